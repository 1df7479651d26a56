package servicedesk

import (
	"context"
	"strings"
	"testing"
)

func TestCheckAvailabilityAndBook(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	svc := NewService(repo)
	svc.SetCapacity(1)

	avail, err := svc.CheckAvailability(ctx, "2025-06-02", "oil_change")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !avail.Available || avail.NextSlot == "" {
		t.Fatalf("expected open slot: %+v", avail)
	}

	apt, err := svc.Book(ctx, BookingRequest{
		ServiceType:   "oil_change",
		PreferredDate: "2025-06-02",
		CustomerName:  "Jane Doe",
		Phone:         "+14155552671",
	}, avail.NextSlot)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.HasPrefix(apt.ID, "APT_") || !apt.ConfirmationSent {
		t.Fatalf("unexpected appointment: %+v", apt)
	}

	// capacity 1 is now exhausted for that date
	avail, err = svc.CheckAvailability(ctx, "2025-06-02", "oil_change")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if avail.Available {
		t.Fatalf("expected the date to be full")
	}

	alts := svc.AlternativeDates("2025-06-02")
	if len(alts) != 2 || alts[0] != "2025-06-03" || alts[1] != "2025-06-04" {
		t.Fatalf("unexpected alternatives: %v", alts)
	}
}

func TestBookValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Book(context.Background(), BookingRequest{PreferredDate: "2025-06-02"}, ""); err != ErrServiceTypeRequired {
		t.Fatalf("expected ErrServiceTypeRequired, got %v", err)
	}
	if _, err := svc.Book(context.Background(), BookingRequest{ServiceType: "brakes"}, ""); err != ErrDateRequired {
		t.Fatalf("expected ErrDateRequired, got %v", err)
	}
}
