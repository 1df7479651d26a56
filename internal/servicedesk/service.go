package servicedesk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository stores booked appointments.
type Repository interface {
	CountOnDate(ctx context.Context, date string) (int, error)
	Insert(ctx context.Context, a Appointment) error
}

var (
	ErrServiceTypeRequired = errors.New("servicedesk: service type is required")
	ErrDateRequired        = errors.New("servicedesk: preferred date is required")
)

// defaultCapacity is the number of same-day service slots the pilot
// dealership exposes to the voice channel.
const defaultCapacity = 8

// Service answers availability checks and books appointments for the
// schedule_service tool.
type Service struct {
	repo     Repository
	capacity int
	clock    func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, capacity: defaultCapacity, clock: time.Now}
}

// SetCapacity overrides the per-day slot count. Test hook.
func (s *Service) SetCapacity(n int) { s.capacity = n }

// CheckAvailability reports whether the date still has open slots.
func (s *Service) CheckAvailability(ctx context.Context, date, serviceType string) (Availability, error) {
	if strings.TrimSpace(date) == "" {
		return Availability{}, ErrDateRequired
	}
	booked, err := s.repo.CountOnDate(ctx, date)
	if err != nil {
		return Availability{}, err
	}
	if booked >= s.capacity {
		return Availability{Available: false}, nil
	}
	return Availability{Available: true, NextSlot: "10:00 AM"}, nil
}

// AlternativeDates offers the two days following an unavailable date.
func (s *Service) AlternativeDates(preferred string) []string {
	base, err := time.Parse("2006-01-02", preferred)
	if err != nil {
		base = s.clock()
	}
	return []string{
		base.AddDate(0, 0, 1).Format("2006-01-02"),
		base.AddDate(0, 0, 2).Format("2006-01-02"),
	}
}

// Book records the appointment and returns it with a confirmation id.
func (s *Service) Book(ctx context.Context, req BookingRequest, slot string) (Appointment, error) {
	if strings.TrimSpace(req.ServiceType) == "" {
		return Appointment{}, ErrServiceTypeRequired
	}
	if strings.TrimSpace(req.PreferredDate) == "" {
		return Appointment{}, ErrDateRequired
	}

	a := Appointment{
		ID:               fmt.Sprintf("APT_%s", strings.ReplaceAll(uuid.NewString(), "-", "")),
		ServiceType:      req.ServiceType,
		Date:             req.PreferredDate,
		TimeSlot:         slot,
		VehicleInfo:      req.VehicleInfo,
		CustomerName:     req.CustomerName,
		Phone:            req.Phone,
		ConfirmationSent: true,
		CreatedAt:        s.clock().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// MemoryRepo keeps appointments in memory for the pilot.
type MemoryRepo struct {
	mu           sync.Mutex
	appointments []Appointment
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) CountOnDate(_ context.Context, date string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.appointments {
		if a.Date == date {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) Insert(_ context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = append(r.appointments, a)
	return nil
}

func (r *MemoryRepo) Appointments() []Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Appointment(nil), r.appointments...)
}
