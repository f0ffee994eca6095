package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dan-burt/padelbook1/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DayRows(ctx context.Context, date string) ([]DayRow, error) {
	query := `
		SELECT b.id AS booking_id, b.start_time, b.number_of_courts, b.courts, b.total_price,
		       bp.id AS link_id, bp.player_id, p.name AS player_name, bp.amount_due, bp.has_paid
		FROM bookings b
		LEFT JOIN booking_players bp ON bp.booking_id = b.id
		LEFT JOIN players p ON p.id = bp.player_id
		WHERE b.booking_date = $1
		ORDER BY b.start_time ASC, bp.id ASC
	`

	rows := []DayRow{}
	if err := r.db.SelectContext(ctx, &rows, query, date); err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *repository) FindBySlot(ctx context.Context, date, startTime string) ([]Booking, error) {
	query := `
		SELECT id, to_char(booking_date, 'YYYY-MM-DD') AS booking_date, start_time, duration_hours,
		       number_of_courts, courts, total_price, created_at
		FROM bookings
		WHERE booking_date = $1 AND start_time = $2
		ORDER BY id ASC
	`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, date, startTime); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) Links(ctx context.Context, bookingID int64) ([]Link, error) {
	query := `
		SELECT id, booking_id, player_id, amount_due, has_paid, created_at
		FROM booking_players
		WHERE booking_id = $1
		ORDER BY id ASC
	`

	links := []Link{}
	if err := r.db.SelectContext(ctx, &links, query, bookingID); err != nil {
		return nil, err
	}

	return links, nil
}

// CreateBooking inserts a booking. A row inserted concurrently for the same
// date and start time is updated instead.
func (r *repository) CreateBooking(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (booking_date, start_time, duration_hours, number_of_courts, courts, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (booking_date, start_time) DO UPDATE
		SET number_of_courts = EXCLUDED.number_of_courts,
		    courts = EXCLUDED.courts,
		    total_price = EXCLUDED.total_price
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		b.BookingDate,
		b.StartTime,
		b.DurationHours,
		b.NumberOfCourts,
		b.Courts,
		b.TotalPrice,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repository) UpdateBooking(ctx context.Context, id int64, courts []int, totalPrice int64) error {
	query := `
		UPDATE bookings
		SET number_of_courts = $1, courts = $2, total_price = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, len(courts), courtArray(courts), totalPrice, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *repository) AddLink(ctx context.Context, l *Link) (bool, error) {
	query := `
		INSERT INTO booking_players (booking_id, player_id, amount_due, has_paid)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (booking_id, player_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, l.BookingID, l.PlayerID, l.AmountDue, l.HasPaid).
		Scan(&l.ID, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *repository) UpdateLink(ctx context.Context, id int64, amountDue int64, hasPaid bool) error {
	query := `
		UPDATE booking_players
		SET amount_due = $1, has_paid = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, amountDue, hasPaid, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *repository) RemovePlayerFromDate(ctx context.Context, date string, playerID int64) (int64, error) {
	query := `
		DELETE FROM booking_players bp
		USING bookings b
		WHERE bp.booking_id = b.id AND b.booking_date = $1 AND bp.player_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, date, playerID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *repository) DeleteDay(ctx context.Context, date string, slots []string) (int64, int64, error) {
	scope := `booking_date = $1`
	args := []interface{}{date}
	if len(slots) > 0 {
		scope += ` AND start_time = ANY($2)`
		args = append(args, pq.Array(slots))
	}

	linksQuery := `
		DELETE FROM booking_players
		WHERE booking_id IN (SELECT id FROM bookings WHERE ` + scope + `)
	`
	bookingsQuery := `DELETE FROM bookings WHERE ` + scope

	var bookings, links int64
	err := db.RunInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, linksQuery, args...)
		if err != nil {
			return err
		}
		if links, err = result.RowsAffected(); err != nil {
			return err
		}

		result, err = tx.ExecContext(ctx, bookingsQuery, args...)
		if err != nil {
			return err
		}
		bookings, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	return bookings, links, nil
}

func (r *repository) BookedDates(ctx context.Context, from, to string) ([]string, error) {
	query := `
		SELECT DISTINCT to_char(booking_date, 'YYYY-MM-DD') AS booked
		FROM bookings
		WHERE booking_date >= $1 AND booking_date <= $2
		ORDER BY booked ASC
	`

	dates := []string{}
	if err := r.db.SelectContext(ctx, &dates, query, from, to); err != nil {
		return nil, err
	}

	return dates, nil
}

func (r *repository) Dues(ctx context.Context, date string) ([]Due, error) {
	query := `
		SELECT p.id AS player_id, p.name AS player_name, p.email, SUM(bp.amount_due) AS amount_due
		FROM booking_players bp
		JOIN bookings b ON b.id = bp.booking_id
		JOIN players p ON p.id = bp.player_id
		WHERE b.booking_date = $1 AND bp.has_paid = FALSE AND COALESCE(p.email, '') <> ''
		GROUP BY p.id, p.name, p.email
		ORDER BY lower(p.name) ASC
	`

	dues := []Due{}
	if err := r.db.SelectContext(ctx, &dues, query, date); err != nil {
		return nil, err
	}

	return dues, nil
}

func courtArray(courts []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(courts))
	for _, c := range courts {
		out = append(out, int64(c))
	}
	return out
}
