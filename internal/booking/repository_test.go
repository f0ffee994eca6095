package booking

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingColumns = []string{"id", "booking_date", "start_time", "duration_hours", "number_of_courts", "courts", "total_price", "created_at"}

func setupBookingMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestDayRows(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	columns := []string{"booking_id", "start_time", "number_of_courts", "courts", "total_price",
		"link_id", "player_id", "player_name", "amount_due", "has_paid"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b LEFT JOIN booking_players bp ON bp.booking_id = b.id LEFT JOIN players p ON p.id = bp.player_id WHERE b.booking_date = $1 ORDER BY b.start_time ASC, bp.id ASC")).
		WithArgs(testDate).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(100, "07:00", 2, "{1,2}", 32, 500, 1, "Ann", 16, true).
			AddRow(101, "08:00", 1, "{}", 16, nil, nil, nil, nil, nil))

	rows, err := repo.DayRows(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, pq.Int64Array{1, 2}, rows[0].Courts)
	assert.True(t, rows[0].PlayerID.Valid)
	assert.Equal(t, "Ann", rows[0].PlayerName.String)
	assert.True(t, rows[0].HasPaid.Bool)

	assert.False(t, rows[1].LinkID.Valid)
	assert.False(t, rows[1].PlayerID.Valid)
	assert.Empty(t, rows[1].Courts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBySlot(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE booking_date = $1 AND start_time = $2 ORDER BY id ASC")).
		WithArgs(testDate, "07:00").
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(100, testDate, "07:00", 1, 1, "{2}", 16, now))

	got, err := repo.FindBySlot(context.Background(), testDate, "07:00")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0].ID)
	assert.Equal(t, []int{2}, got[0].CourtSet())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinks(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, booking_id, player_id, amount_due, has_paid, created_at FROM booking_players WHERE booking_id = $1 ORDER BY id ASC")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "player_id", "amount_due", "has_paid", "created_at"}).
			AddRow(500, 100, 1, 8, false, time.Now()))

	links, err := repo.Links(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(8), links[0].AmountDue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (booking_date, start_time, duration_hours, number_of_courts, courts, total_price) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (booking_date, start_time) DO UPDATE")).
		WithArgs(testDate, "07:00", 1, 2, sqlmock.AnyArg(), int64(32)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(100, now))

	b := &Booking{
		BookingDate:    testDate,
		StartTime:      "07:00",
		DurationHours:  1,
		NumberOfCourts: 2,
		Courts:         pq.Int64Array{1, 2},
		TotalPrice:     32,
	}
	err := repo.CreateBooking(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(100), b.ID)
	assert.Equal(t, now, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBooking(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	query := regexp.QuoteMeta("UPDATE bookings SET number_of_courts = $1, courts = $2, total_price = $3 WHERE id = $4")

	mock.ExpectExec(query).
		WithArgs(2, sqlmock.AnyArg(), int64(32), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateBooking(context.Background(), 100, []int{1, 2}, 32))

	mock.ExpectExec(query).
		WithArgs(1, sqlmock.AnyArg(), int64(16), int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateBooking(context.Background(), 999, []int{1}, 16)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLink(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	query := regexp.QuoteMeta("INSERT INTO booking_players (booking_id, player_id, amount_due, has_paid) VALUES ($1, $2, $3, $4) ON CONFLICT (booking_id, player_id) DO NOTHING RETURNING id, created_at")

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(int64(100), int64(1), int64(11), false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(500, time.Now()))

		l := &Link{BookingID: 100, PlayerID: 1, AmountDue: 11}
		added, err := repo.AddLink(context.Background(), l)
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, int64(500), l.ID)
	})

	t.Run("already linked", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(int64(100), int64(1), int64(11), false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

		added, err := repo.AddLink(context.Background(), &Link{BookingID: 100, PlayerID: 1, AmountDue: 11})
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("store error", func(t *testing.T) {
		mock.ExpectQuery(query).WillReturnError(errors.New("fk violation"))

		_, err := repo.AddLink(context.Background(), &Link{BookingID: 100, PlayerID: 1})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLink(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_players SET amount_due = $1, has_paid = $2 WHERE id = $3")).
		WithArgs(int64(11), true, int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLink(context.Background(), 500, 11, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemovePlayerFromDate(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM booking_players bp USING bookings b WHERE bp.booking_id = b.id AND b.booking_date = $1 AND bp.player_id = $2")).
		WithArgs(testDate, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.RemovePlayerFromDate(context.Background(), testDate, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteDay(t *testing.T) {
	t.Run("whole day", func(t *testing.T) {
		repo, mock, close := setupBookingMock(t)
		defer close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM booking_players WHERE booking_id IN (SELECT id FROM bookings WHERE booking_date = $1)")).
			WithArgs(testDate).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE booking_date = $1")).
			WithArgs(testDate).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		bookings, links, err := repo.DeleteDay(context.Background(), testDate, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), bookings)
		assert.Equal(t, int64(5), links)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("selected slots", func(t *testing.T) {
		repo, mock, close := setupBookingMock(t)
		defer close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM booking_players WHERE booking_id IN (SELECT id FROM bookings WHERE booking_date = $1 AND start_time = ANY($2))")).
			WithArgs(testDate, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE booking_date = $1 AND start_time = ANY($2)")).
			WithArgs(testDate, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		bookings, links, err := repo.DeleteDay(context.Background(), testDate, []string{"07:00"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), bookings)
		assert.Equal(t, int64(2), links)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("links kept when bookings fail", func(t *testing.T) {
		repo, mock, close := setupBookingMock(t)
		defer close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM booking_players")).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings")).
			WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		_, _, err := repo.DeleteDay(context.Background(), testDate, nil)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookedDates_Repository(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT to_char(booking_date, 'YYYY-MM-DD') AS booked FROM bookings WHERE booking_date >= $1 AND booking_date <= $2")).
		WithArgs("2024-05-01", "2024-05-31").
		WillReturnRows(sqlmock.NewRows([]string{"booked"}).AddRow("2024-05-01").AddRow("2024-05-17"))

	dates, err := repo.BookedDates(context.Background(), "2024-05-01", "2024-05-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-05-17"}, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDues(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.booking_date = $1 AND bp.has_paid = FALSE AND COALESCE(p.email, '') <> '' GROUP BY p.id, p.name, p.email")).
		WithArgs(testDate).
		WillReturnRows(sqlmock.NewRows([]string{"player_id", "player_name", "email", "amount_due"}).
			AddRow(1, "Ann", "ann@example.com", 11))

	dues, err := repo.Dues(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, dues, 1)
	assert.Equal(t, Due{PlayerID: 1, PlayerName: "Ann", Email: "ann@example.com", AmountDue: 11}, dues[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
