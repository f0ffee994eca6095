package booking

import (
	"context"
	"fmt"
	"sort"

	"github.com/dan-burt/padelbook1/internal/fee"
	"github.com/dan-burt/padelbook1/internal/roster"
	"github.com/dan-burt/padelbook1/internal/slot"
)

// LoadDay derives the form state of a date from its stored bookings. Any
// read failure is reported as ErrLoadFailure and no partial day is returned.
func (s *service) LoadDay(ctx context.Context, date string) (*Day, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	date = d.Format(DateLayout)

	rows, err := within(ctx, s.storeTimeout, func(ctx context.Context) ([]DayRow, error) {
		return s.repo.DayRows(ctx, date)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	if len(rows) == 0 {
		return BlankDay(date), nil
	}

	rates, err := s.rates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}

	return buildDay(date, rows, rates), nil
}

// buildDay folds the joined rows of one date into form state. Slots are the
// distinct start times, courts the union of every booking's court set, and
// each player's fee covers the whole day's footprint.
func buildDay(date string, rows []DayRow, rates fee.RateCard) *Day {
	if len(rows) == 0 {
		return BlankDay(date)
	}

	seen := make(map[int64]struct{})
	slotSet := make(map[string]struct{})
	active := make(map[int]struct{})
	players := make([]roster.Row, 0, len(rows))

	for _, r := range rows {
		if _, ok := seen[r.BookingID]; !ok {
			seen[r.BookingID] = struct{}{}
			slotSet[displaySlot(r.StartTime)] = struct{}{}
			for _, c := range courtSet(r.Courts, r.NumberOfCourts) {
				active[c] = struct{}{}
			}
		}
		if r.PlayerID.Valid {
			players = append(players, r.rosterRow())
		}
	}

	slots := make([]string, 0, len(slotSet))
	for s := range slotSet {
		slots = append(slots, s)
	}
	sort.Strings(slots)

	courts := make([]int, 0, len(active))
	for c := range active {
		courts = append(courts, c)
	}
	sort.Ints(courts)

	return &Day{
		Date:               date,
		Courts:             courts,
		Slots:              slots,
		Roster:             fee.Calculate(roster.Normalize(players), courts, len(slots), rates),
		TotalCost:          fee.Total(courts, len(slots), rates),
		HasExistingBooking: true,
	}
}

func displaySlot(raw string) string {
	if s, err := slot.Normalize(raw); err == nil {
		return s
	}
	return raw
}
