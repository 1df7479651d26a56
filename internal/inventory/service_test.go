package inventory

import (
	"context"
	"testing"
)

func TestSearch(t *testing.T) {
	svc := NewService(NewMemoryRepo(DemoStock()))
	ctx := context.Background()

	all, err := svc.Search(ctx, SearchCriteria{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected full stock, got %d", len(all))
	}

	byMake, err := svc.Search(ctx, SearchCriteria{Make: "toyota"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(byMake) != 1 || byMake[0].Model != "RAV4" {
		t.Fatalf("case-insensitive make filter failed: %+v", byMake)
	}

	byPrice, err := svc.Search(ctx, SearchCriteria{PriceMax: 33000})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(byPrice) != 1 || byPrice[0].Make != "Honda" {
		t.Fatalf("price cap filter failed: %+v", byPrice)
	}

	none, err := svc.Search(ctx, SearchCriteria{Make: "Ford"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %+v", none)
	}
}
