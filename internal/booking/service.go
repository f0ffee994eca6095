package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dan-burt/padelbook1/internal/court"
	"github.com/dan-burt/padelbook1/internal/fee"
	"github.com/dan-burt/padelbook1/internal/logger"
	"github.com/dan-burt/padelbook1/internal/metrics"
	"github.com/dan-burt/padelbook1/internal/player"
	"github.com/dan-burt/padelbook1/internal/roster"
	"github.com/dan-burt/padelbook1/internal/slot"
)

// Notifier delivers a payment reminder to one player.
type Notifier interface {
	SendFeeReminder(ctx context.Context, to, name, date string, amount int64) error
}

type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
	LoadDay(ctx context.Context, date string) (*Day, error)
	BookedDates(ctx context.Context, year, month int) ([]string, error)
	Save(ctx context.Context, date string, req SaveRequest) (*SaveResult, error)
	RemovePlayer(ctx context.Context, date string, playerID int64) (*RemoveResult, error)
	DeleteDay(ctx context.Context, date string, slots []string) (*DeleteResult, error)
	SendReminders(ctx context.Context, date string) (*ReminderResult, error)
}

type service struct {
	repo         Repository
	players      player.Repository
	courts       court.Service
	cache        CalendarCache
	notifier     Notifier
	storeTimeout time.Duration
}

// NewService wires the booking service. cache may be nil, and notifier is
// nil when reminders are disabled.
func NewService(
	repo Repository,
	players player.Repository,
	courts court.Service,
	cache CalendarCache,
	notifier Notifier,
	storeTimeout time.Duration,
) Service {
	if cache == nil {
		cache = NopCache()
	}
	return &service{
		repo:         repo,
		players:      players,
		courts:       courts,
		cache:        cache,
		notifier:     notifier,
		storeTimeout: storeTimeout,
	}
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, &ValidationError{Problems: []string{fmt.Sprintf("date %q must be YYYY-MM-DD", raw)}}
	}
	return d, nil
}

// cleanCourts records unknown court ids as validation problems. Any other
// error comes from the catalogue read.
func (s *service) cleanCourts(ctx context.Context, ids []int, verr *ValidationError) ([]int, error) {
	courts, err := within(ctx, s.storeTimeout, func(ctx context.Context) ([]int, error) {
		return s.courts.Clean(ctx, ids)
	})
	if errors.Is(err, court.ErrUnknownCourt) {
		verr.add(err.Error())
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load court catalogue: %w", err)
	}
	return courts, nil
}

func (s *service) rates(ctx context.Context) (fee.RateCard, error) {
	return within(ctx, s.storeTimeout, s.courts.Rates)
}

// Quote prices a form state without touching bookings. Duplicate names are
// merged and rows adopt the id of a known player with the same name.
func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	verr := &ValidationError{}

	slots, err := slot.Clean(req.Slots)
	if err != nil {
		verr.add(err.Error())
	}
	courts, err := s.cleanCourts(ctx, req.Courts, verr)
	if err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	rates, err := s.rates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load court rates: %w", err)
	}

	known, err := within(ctx, s.storeTimeout, s.players.List)
	if err != nil {
		logger.Warn("Quoting without known players", "error", err)
	}
	ids := make([]roster.Known, 0, len(known))
	for _, p := range known {
		ids = append(ids, roster.Known{ID: p.ID, Name: p.Name})
	}

	entries := fee.Calculate(roster.Dedupe(req.Roster, ids), courts, len(slots), rates)
	total := fee.Total(courts, len(slots), rates)

	return &Quote{
		Roster:    entries,
		TotalCost: total,
		PerPlayer: fee.Share(total, roster.CountNamed(entries)),
	}, nil
}

func (s *service) BookedDates(ctx context.Context, year, month int) ([]string, error) {
	verr := &ValidationError{}
	if month < 1 || month > 12 {
		verr.add(fmt.Sprintf("month %d must be between 1 and 12", month))
	}
	if year < 2000 || year > 2100 {
		verr.add(fmt.Sprintf("year %d is out of range", year))
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	dates, ok, err := s.cache.Get(ctx, year, month)
	switch {
	case err != nil:
		metrics.RecordCacheLookup("error")
		logger.Warn("Calendar cache read failed", "key", calendarKey(year, month), "error", err)
	case ok:
		metrics.RecordCacheLookup("hit")
		return dates, nil
	default:
		metrics.RecordCacheLookup("miss")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	dates, err = within(ctx, s.storeTimeout, func(ctx context.Context) ([]string, error) {
		return s.repo.BookedDates(ctx, first.Format(DateLayout), last.Format(DateLayout))
	})
	if err != nil {
		return nil, fmt.Errorf("load booked dates: %w", err)
	}

	if err := s.cache.Set(ctx, year, month, dates); err != nil {
		logger.Warn("Calendar cache write failed", "key", calendarKey(year, month), "error", err)
	}

	return dates, nil
}

func (s *service) RemovePlayer(ctx context.Context, date string, playerID int64) (*RemoveResult, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if playerID <= 0 {
		return nil, &ValidationError{Problems: []string{"player id must be positive"}}
	}
	date = d.Format(DateLayout)

	removed, err := within(ctx, s.storeTimeout, func(ctx context.Context) (int64, error) {
		return s.repo.RemovePlayerFromDate(ctx, date, playerID)
	})
	if err != nil {
		metrics.RecordFailure(string(FailurePersistence))
		return nil, persistenceFailure("remove player", "", fmt.Sprint(playerID), err)
	}
	if removed == 0 {
		return nil, ErrPlayerNotBooked
	}

	metrics.RecordLinks("removed", int(removed))
	logger.Info("Player removed from day", "date", date, "player_id", playerID, "links", removed)

	result := &RemoveResult{LinksRemoved: removed}
	updated, err := s.rebalance(ctx, date)
	result.LinksUpdated = updated
	if err != nil {
		result.Failures = append(result.Failures, persistenceFailure("rebalance fees", "", "", err))
		metrics.RecordFailure(string(FailurePersistence))
		logger.Error("Failed to rebalance day fees", "date", date, "error", err)
	}

	s.invalidate(ctx, d)
	result.Day = s.reload(ctx, date)
	return result, nil
}

func (s *service) DeleteDay(ctx context.Context, date string, slots []string) (*DeleteResult, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	cleaned, err := slot.Clean(slots)
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}
	date = d.Format(DateLayout)

	type counts struct{ bookings, links int64 }
	n, err := within(ctx, s.storeTimeout, func(ctx context.Context) (counts, error) {
		b, l, err := s.repo.DeleteDay(ctx, date, cleaned)
		return counts{b, l}, err
	})
	if err != nil {
		metrics.RecordFailure(string(FailurePersistence))
		return nil, persistenceFailure("delete day", strings.Join(cleaned, ","), "", err)
	}

	metrics.RecordDayDeletion()
	metrics.RecordLinks("removed", int(n.links))
	logger.Info("Day deleted", "date", date, "slots", cleaned, "bookings", n.bookings, "links", n.links)

	result := &DeleteResult{BookingsDeleted: n.bookings, LinksDeleted: n.links}
	if len(cleaned) > 0 {
		updated, err := s.rebalance(ctx, date)
		result.LinksUpdated = updated
		if err != nil {
			result.Failures = append(result.Failures, persistenceFailure("rebalance fees", "", "", err))
			metrics.RecordFailure(string(FailurePersistence))
			logger.Error("Failed to rebalance day fees", "date", date, "error", err)
		}
	}

	s.invalidate(ctx, d)
	result.Day = s.reload(ctx, date)
	return result, nil
}

// SendReminders queues one email per unpaid player of the date that has an
// email address on file.
func (s *service) SendReminders(ctx context.Context, date string) (*ReminderResult, error) {
	if s.notifier == nil {
		return nil, ErrRemindersDisabled
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	date = d.Format(DateLayout)

	dues, err := within(ctx, s.storeTimeout, func(ctx context.Context) ([]Due, error) {
		return s.repo.Dues(ctx, date)
	})
	if err != nil {
		return nil, fmt.Errorf("load dues: %w", err)
	}

	result := &ReminderResult{}
	for _, due := range dues {
		if due.AmountDue <= 0 {
			result.Skipped++
			continue
		}
		if err := s.notifier.SendFeeReminder(ctx, due.Email, due.PlayerName, date, due.AmountDue); err != nil {
			logger.Error("Failed to queue fee reminder", "player_id", due.PlayerID, "error", err)
			metrics.RecordEmail("fee_reminder", "failed")
			result.Skipped++
			continue
		}
		metrics.RecordEmail("fee_reminder", "queued")
		result.Queued++
	}

	logger.Info("Fee reminders queued", "date", date, "queued", result.Queued, "skipped", result.Skipped)
	return result, nil
}

func (s *service) invalidate(ctx context.Context, d time.Time) {
	if err := s.cache.Invalidate(ctx, d.Year(), int(d.Month())); err != nil {
		logger.Warn("Calendar cache invalidation failed", "key", calendarKey(d.Year(), int(d.Month())), "error", err)
	}
}

// rebalance rewrites the stored amounts of a date after links or bookings
// were removed, so each remaining player owes their share of what is still
// booked, split across their links in start-time order. Paid flags are kept.
func (s *service) rebalance(ctx context.Context, date string) (int, error) {
	rows, err := within(ctx, s.storeTimeout, func(ctx context.Context) ([]DayRow, error) {
		return s.repo.DayRows(ctx, date)
	})
	if err != nil {
		return 0, fmt.Errorf("load day rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	rates, err := s.rates(ctx)
	if err != nil {
		return 0, fmt.Errorf("load court rates: %w", err)
	}

	dayFees := make(map[int64]int64)
	for _, e := range buildDay(date, rows, rates).Roster {
		if e.PlayerID != nil && e.Fee != nil {
			dayFees[*e.PlayerID] = *e.Fee
		}
	}

	held := make(map[int64][]roster.Row)
	var order []int64
	for _, r := range rows {
		if !r.LinkID.Valid {
			continue
		}
		link := r.rosterRow()
		if _, ok := held[link.PlayerID]; !ok {
			order = append(order, link.PlayerID)
		}
		held[link.PlayerID] = append(held[link.PlayerID], link)
	}

	updated := 0
	defer func() { metrics.RecordLinks("updated", updated) }()

	for _, id := range order {
		links := held[id]
		sort.SliceStable(links, func(i, j int) bool { return displaySlot(links[i].StartTime) < displaySlot(links[j].StartTime) })

		shares := fee.SplitAcross(dayFees[id], len(links))
		for i, l := range links {
			if l.AmountDue == shares[i] {
				continue
			}
			amount := shares[i]
			err := withinErr(ctx, s.storeTimeout, func(ctx context.Context) error {
				return s.repo.UpdateLink(ctx, l.LinkID, amount, l.HasPaid)
			})
			if err != nil {
				return updated, fmt.Errorf("update link %d: %w", l.LinkID, err)
			}
			updated++
		}
	}

	if updated > 0 {
		logger.Info("Day fees rebalanced", "date", date, "links", updated)
	}
	return updated, nil
}

// reload re-reads the day after a mutation. A failed read yields the blank
// day, never the pre-mutation state.
func (s *service) reload(ctx context.Context, date string) *Day {
	day, err := s.LoadDay(ctx, date)
	if err != nil {
		logger.Error("Failed to reload day", "date", date, "error", err)
		metrics.RecordFailure(string(FailureLoad))
		return BlankDay(date)
	}
	return day
}
