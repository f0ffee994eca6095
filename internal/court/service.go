package court

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dan-burt/padelbook1/internal/fee"
)

var ErrUnknownCourt = errors.New("unknown court")

type Service interface {
	List(ctx context.Context) ([]Court, error)
	Rates(ctx context.Context) (fee.RateCard, error)
	Clean(ctx context.Context, ids []int) ([]int, error)
}

type service struct {
	repo     Repository
	baseRate int64
}

func NewService(repo Repository, baseRate int64) Service {
	return &service{repo: repo, baseRate: baseRate}
}

func (s *service) List(ctx context.Context) ([]Court, error) {
	return s.repo.List(ctx)
}

// Rates builds the rate card from the court catalogue. Each court is charged
// its own hourly rate; the configured base rate covers anything missing.
func (s *service) Rates(ctx context.Context) (fee.RateCard, error) {
	courts, err := s.repo.List(ctx)
	if err != nil {
		return fee.RateCard{}, err
	}

	rates := fee.NewRateCard(s.baseRate)
	for _, c := range courts {
		rates.PerCourt[c.ID] = c.HourlyRate
	}
	return rates, nil
}

// Clean deduplicates and sorts court ids, rejecting any not in the catalogue.
func (s *service) Clean(ctx context.Context, ids []int) ([]int, error) {
	courts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[int]struct{}, len(courts))
	for _, c := range courts {
		known[c.ID] = struct{}{}
	}

	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCourt, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}
