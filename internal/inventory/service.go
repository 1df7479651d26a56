package inventory

import (
	"context"
	"strings"
)

// Repository is the stock lookup contract.
type Repository interface {
	List(ctx context.Context) ([]Vehicle, error)
}

// Service filters dealership stock for the voice agent's inventory tool.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns all vehicles matching the criteria. Matching is
// case-insensitive on make/model; price and year are upper/exact bounds.
func (s *Service) Search(ctx context.Context, c SearchCriteria) ([]Vehicle, error) {
	stock, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []Vehicle
	for _, v := range stock {
		if c.Make != "" && !strings.EqualFold(v.Make, c.Make) {
			continue
		}
		if c.Model != "" && !strings.EqualFold(v.Model, c.Model) {
			continue
		}
		if c.Year != 0 && v.Year != c.Year {
			continue
		}
		if c.PriceMax != 0 && v.Price > c.PriceMax {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
