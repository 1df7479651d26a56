package inventory

import (
	"context"
	"sync"
)

// MemoryRepo holds stock in memory. The pilot runs against seeded demo
// stock; a DMS-backed repository replaces this in production.
type MemoryRepo struct {
	mu       sync.Mutex
	vehicles []Vehicle
}

func NewMemoryRepo(seed []Vehicle) *MemoryRepo {
	return &MemoryRepo{vehicles: append([]Vehicle(nil), seed...)}
}

// DemoStock is the sample stock used when no DMS is wired up.
func DemoStock() []Vehicle {
	return []Vehicle{
		{
			Year: 2024, Make: "Toyota", Model: "RAV4",
			Price: 35000, Mileage: 100, VIN: "ABC123", Color: "Blue",
			Features: []string{"AWD", "Leather", "Sunroof"},
		},
		{
			Year: 2023, Make: "Honda", Model: "CR-V",
			Price: 32000, Mileage: 5000, VIN: "XYZ789", Color: "Silver",
			Features: []string{"AWD", "Navigation", "Heated Seats"},
		},
	}
}

func (r *MemoryRepo) List(context.Context) ([]Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Vehicle(nil), r.vehicles...), nil
}

func (r *MemoryRepo) Add(v Vehicle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles = append(r.vehicles, v)
}
