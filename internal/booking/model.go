package booking

import (
	"database/sql"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/dan-burt/padelbook1/internal/roster"
)

const (
	DateLayout = "2006-01-02"

	// SlotHours is the length of every booking row.
	SlotHours = 1
)

type Booking struct {
	ID             int64         `db:"id" json:"id"`
	BookingDate    string        `db:"booking_date" json:"booking_date"`
	StartTime      string        `db:"start_time" json:"start_time"`
	DurationHours  int           `db:"duration_hours" json:"duration_hours"`
	NumberOfCourts int           `db:"number_of_courts" json:"number_of_courts"`
	Courts         pq.Int64Array `db:"courts" json:"courts"`
	TotalPrice     int64         `db:"total_price" json:"total_price"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

// CourtSet returns the ids of the courts this booking covers. Rows written
// before court ids were stored only carry a count: 1 means court 1 and 2
// means both courts.
func (b Booking) CourtSet() []int {
	return courtSet(b.Courts, b.NumberOfCourts)
}

func courtSet(ids pq.Int64Array, count int) []int {
	if len(ids) > 0 {
		out := make([]int, 0, len(ids))
		for _, id := range ids {
			out = append(out, int(id))
		}
		sort.Ints(out)
		return out
	}
	out := make([]int, 0, count)
	for c := 1; c <= count; c++ {
		out = append(out, c)
	}
	return out
}

// Link is one player's participation and fee in one booking.
type Link struct {
	ID        int64     `db:"id" json:"id"`
	BookingID int64     `db:"booking_id" json:"booking_id"`
	PlayerID  int64     `db:"player_id" json:"player_id"`
	AmountDue int64     `db:"amount_due" json:"amount_due"`
	HasPaid   bool      `db:"has_paid" json:"has_paid"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DayRow is one row of the bookings/booking_players/players join for a
// date. Link columns are null for a booking without players.
type DayRow struct {
	BookingID      int64          `db:"booking_id"`
	StartTime      string         `db:"start_time"`
	NumberOfCourts int            `db:"number_of_courts"`
	Courts         pq.Int64Array  `db:"courts"`
	TotalPrice     int64          `db:"total_price"`
	LinkID         sql.NullInt64  `db:"link_id"`
	PlayerID       sql.NullInt64  `db:"player_id"`
	PlayerName     sql.NullString `db:"player_name"`
	AmountDue      sql.NullInt64  `db:"amount_due"`
	HasPaid        sql.NullBool   `db:"has_paid"`
}

func (r DayRow) rosterRow() roster.Row {
	return roster.Row{
		BookingID:  r.BookingID,
		StartTime:  r.StartTime,
		LinkID:     r.LinkID.Int64,
		PlayerID:   r.PlayerID.Int64,
		PlayerName: r.PlayerName.String,
		AmountDue:  r.AmountDue.Int64,
		HasPaid:    r.HasPaid.Bool,
	}
}

// Due is the unpaid total of one player on one date.
type Due struct {
	PlayerID   int64  `db:"player_id" json:"player_id"`
	PlayerName string `db:"player_name" json:"player_name"`
	Email      string `db:"email" json:"email"`
	AmountDue  int64  `db:"amount_due" json:"amount_due"`
}

// Day is the form state for one date.
type Day struct {
	Date               string         `json:"date" example:"2024-05-01"`
	Courts             []int          `json:"courts"`
	Slots              []string       `json:"slots"`
	Roster             []roster.Entry `json:"roster"`
	TotalCost          int64          `json:"total_cost"`
	HasExistingBooking bool           `json:"has_existing_booking"`
}

func BlankDay(date string) *Day {
	return &Day{
		Date:   date,
		Courts: []int{},
		Slots:  []string{},
		Roster: roster.Blank(roster.BlankRows),
	}
}

type QuoteRequest struct {
	Courts []int          `json:"courts" validate:"max=2,dive,gte=1"`
	Slots  []string       `json:"slots" validate:"max=16"`
	Roster []roster.Entry `json:"roster" validate:"max=64"`
}

type Quote struct {
	Roster    []roster.Entry `json:"roster"`
	TotalCost int64          `json:"total_cost"`
	PerPlayer int64          `json:"per_player"`
}

type SaveRequest struct {
	Courts []int          `json:"courts" validate:"max=2,dive,gte=1"`
	Slots  []string       `json:"slots" validate:"max=16"`
	Roster []roster.Entry `json:"roster" validate:"max=64"`
}

type SlotOutcome string

const (
	OutcomeCreated   SlotOutcome = "created"
	OutcomeUpdated   SlotOutcome = "updated"
	OutcomeUnchanged SlotOutcome = "unchanged"
	OutcomeSkipped   SlotOutcome = "skipped"
	OutcomeFailed    SlotOutcome = "failed"
)

type SlotReport struct {
	Slot         string      `json:"slot"`
	BookingID    int64       `json:"booking_id,omitempty"`
	Outcome      SlotOutcome `json:"outcome"`
	LinksAdded   int         `json:"links_added"`
	LinksUpdated int         `json:"links_updated"`
}

type SaveResult struct {
	Slots    []SlotReport  `json:"slots"`
	Failures []SlotFailure `json:"failures"`
	Day      *Day          `json:"day"`
}

func (r *SaveResult) fail(f SlotFailure) {
	r.Failures = append(r.Failures, f)
}

type RemoveResult struct {
	LinksRemoved int64         `json:"links_removed"`
	LinksUpdated int           `json:"links_updated"`
	Failures     []SlotFailure `json:"failures,omitempty"`
	Day          *Day          `json:"day"`
}

type DeleteResult struct {
	BookingsDeleted int64         `json:"bookings_deleted"`
	LinksDeleted    int64         `json:"links_deleted"`
	LinksUpdated    int           `json:"links_updated"`
	Failures        []SlotFailure `json:"failures,omitempty"`
	Day             *Day          `json:"day,omitempty"`
}

type ReminderResult struct {
	Queued  int `json:"queued"`
	Skipped int `json:"skipped"`
}
