package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dan-burt/padelbook1/internal/fee"
	"github.com/dan-burt/padelbook1/internal/logger"
	"github.com/dan-burt/padelbook1/internal/metrics"
	"github.com/dan-burt/padelbook1/internal/player"
	"github.com/dan-burt/padelbook1/internal/roster"
	"github.com/dan-burt/padelbook1/internal/slot"
)

type savePlan struct {
	day    time.Time
	date   string
	slots  []string
	courts []int
	hourly int64
	rates  fee.RateCard
	roster []roster.Entry
}

type resolvedPlayer struct {
	id     int64
	name   string
	paid   bool
	shares []int64
}

// plan validates a save request and collects its named players. Nothing is
// written; fees are priced once the players are resolved.
func (s *service) plan(ctx context.Context, date string, req SaveRequest) (*savePlan, error) {
	verr := &ValidationError{}

	d, err := parseDate(date)
	var dateErr *ValidationError
	if errors.As(err, &dateErr) {
		verr.Problems = append(verr.Problems, dateErr.Problems...)
	}

	slots, err := slot.Clean(req.Slots)
	if err != nil {
		verr.add(err.Error())
	} else if len(slots) == 0 {
		verr.add("select at least one time slot")
	}

	courts, err := s.cleanCourts(ctx, req.Courts, verr)
	if err != nil {
		return nil, err
	}
	if courts != nil && len(courts) == 0 {
		verr.add("select at least one court")
	}

	entries := roster.Named(roster.Dedupe(req.Roster, nil))
	if len(entries) == 0 {
		verr.add("enter at least one player name")
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	rates, err := s.rates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load court rates: %w", err)
	}

	return &savePlan{
		day:    d,
		date:   d.Format(DateLayout),
		slots:  slots,
		courts: courts,
		hourly: rates.Hourly(courts),
		rates:  rates,
		roster: entries,
	}, nil
}

// Save reconciles the form state of a date into bookings and links. Slots
// are processed one at a time in ascending order; a failed or conflicting
// slot does not stop the others. The returned day is re-read from the store.
func (s *service) Save(ctx context.Context, date string, req SaveRequest) (*SaveResult, error) {
	began := time.Now()

	p, err := s.plan(ctx, date, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			metrics.RecordSave("invalid", 0)
		}
		return nil, err
	}

	result := &SaveResult{Slots: []SlotReport{}, Failures: []SlotFailure{}}

	players := s.resolvePlayers(ctx, p, result)
	if len(players) > 0 {
		for i := range p.slots {
			report := s.reconcileSlot(ctx, p, i, players, result)
			metrics.RecordSlotOutcome(string(report.Outcome))
			result.Slots = append(result.Slots, report)
		}
	}

	s.invalidate(ctx, p.day)

	day, err := s.LoadDay(ctx, p.date)
	if err != nil {
		result.fail(SlotFailure{Kind: FailureLoad, Op: "reload day", Message: err.Error(), Err: err})
		day = BlankDay(p.date)
	}
	result.Day = day

	for _, f := range result.Failures {
		metrics.RecordFailure(string(f.Kind))
	}
	outcome := "ok"
	if len(result.Failures) > 0 {
		outcome = "partial"
	}
	metrics.RecordSave(outcome, time.Since(began).Seconds())

	logger.Info("Day saved",
		"date", p.date,
		"slots", len(p.slots),
		"courts", p.courts,
		"players", len(players),
		"failures", len(result.Failures),
	)

	return result, nil
}

// resolvePlayers finds or creates every named player in roster order. A
// player that cannot be resolved is reported and left out of every slot,
// and the day fee is shared among the players that remain.
func (s *service) resolvePlayers(ctx context.Context, p *savePlan, result *SaveResult) []resolvedPlayer {
	out := make([]resolvedPlayer, 0, len(p.roster))
	resolved := make([]roster.Entry, 0, len(p.roster))
	for _, e := range p.roster {
		pl, err := within(ctx, s.storeTimeout, func(ctx context.Context) (*player.Player, error) {
			return s.players.Upsert(ctx, e.Name)
		})
		if err != nil {
			result.fail(persistenceFailure("resolve player", "", e.Name, err))
			continue
		}
		out = append(out, resolvedPlayer{id: pl.ID, name: pl.Name, paid: e.Paid})
		resolved = append(resolved, e)
	}

	priced := fee.Calculate(resolved, p.courts, len(p.slots), p.rates)
	for i := range out {
		var dayFee int64
		if priced[i].Fee != nil {
			dayFee = *priced[i].Fee
		}
		out[i].shares = fee.SplitAcross(dayFee, len(p.slots))
	}
	return out
}

func (s *service) reconcileSlot(ctx context.Context, p *savePlan, idx int, players []resolvedPlayer, result *SaveResult) (report SlotReport) {
	start := p.slots[idx]
	report.Slot = start

	defer func() {
		metrics.RecordLinks("added", report.LinksAdded)
		metrics.RecordLinks("updated", report.LinksUpdated)
	}()

	existing, err := within(ctx, s.storeTimeout, func(ctx context.Context) ([]Booking, error) {
		return s.repo.FindBySlot(ctx, p.date, start)
	})
	if err != nil {
		result.fail(persistenceFailure("find booking", start, "", err))
		report.Outcome = OutcomeFailed
		return report
	}

	switch {
	case len(existing) > 1:
		result.fail(conflictFailure(start, fmt.Sprintf("%d bookings already exist for this slot", len(existing))))
		report.Outcome = OutcomeSkipped
		return report
	case len(existing) == 1 && existing[0].DurationHours != SlotHours:
		result.fail(conflictFailure(start, fmt.Sprintf("booking %d spans %d hours", existing[0].ID, existing[0].DurationHours)))
		report.Outcome = OutcomeSkipped
		return report
	}

	var links []Link
	if len(existing) == 0 {
		b := &Booking{
			BookingDate:    p.date,
			StartTime:      start,
			DurationHours:  SlotHours,
			NumberOfCourts: len(p.courts),
			Courts:         courtArray(p.courts),
			TotalPrice:     p.hourly,
		}
		err := withinErr(ctx, s.storeTimeout, func(ctx context.Context) error {
			return s.repo.CreateBooking(ctx, b)
		})
		if err != nil {
			result.fail(persistenceFailure("create booking", start, "", err))
			report.Outcome = OutcomeFailed
			return report
		}
		report.BookingID = b.ID
		report.Outcome = OutcomeCreated
	} else {
		b := existing[0]
		report.BookingID = b.ID
		report.Outcome = OutcomeUnchanged

		if needsUpdate(b, p.courts, p.hourly) {
			err := withinErr(ctx, s.storeTimeout, func(ctx context.Context) error {
				return s.repo.UpdateBooking(ctx, b.ID, p.courts, p.hourly)
			})
			if err != nil {
				result.fail(persistenceFailure("update booking", start, "", err))
				report.Outcome = OutcomeFailed
				return report
			}
			report.Outcome = OutcomeUpdated
		}

		links, err = within(ctx, s.storeTimeout, func(ctx context.Context) ([]Link, error) {
			return s.repo.Links(ctx, b.ID)
		})
		if err != nil {
			result.fail(persistenceFailure("load links", start, "", err))
			report.Outcome = OutcomeFailed
			return report
		}
	}

	linked := make(map[int64]Link, len(links))
	for _, l := range links {
		linked[l.PlayerID] = l
	}

	for _, pl := range players {
		amount := pl.shares[idx]

		if l, ok := linked[pl.id]; ok {
			if l.AmountDue == amount && l.HasPaid == pl.paid {
				continue
			}
			err := withinErr(ctx, s.storeTimeout, func(ctx context.Context) error {
				return s.repo.UpdateLink(ctx, l.ID, amount, pl.paid)
			})
			if err != nil {
				result.fail(persistenceFailure("update link", start, pl.name, err))
				report.Outcome = OutcomeFailed
				return report
			}
			report.LinksUpdated++
			continue
		}

		link := &Link{BookingID: report.BookingID, PlayerID: pl.id, AmountDue: amount, HasPaid: pl.paid}
		added, err := within(ctx, s.storeTimeout, func(ctx context.Context) (bool, error) {
			return s.repo.AddLink(ctx, link)
		})
		if err != nil {
			result.fail(persistenceFailure("add link", start, pl.name, err))
			report.Outcome = OutcomeFailed
			return report
		}
		if added {
			report.LinksAdded++
		}
	}

	if report.Outcome == OutcomeUnchanged && report.LinksAdded+report.LinksUpdated > 0 {
		report.Outcome = OutcomeUpdated
	}
	return report
}

// needsUpdate reports whether a stored booking differs from the wanted court
// set or price. Rows without explicit court ids are always rewritten.
func needsUpdate(b Booking, courts []int, hourly int64) bool {
	if len(b.Courts) == 0 || b.NumberOfCourts != len(courts) || b.TotalPrice != hourly {
		return true
	}
	have := b.CourtSet()
	if len(have) != len(courts) {
		return true
	}
	for i := range have {
		if have[i] != courts[i] {
			return true
		}
	}
	return false
}
