package booking

import "context"

type Repository interface {
	// DayRows returns every booking of the date joined with its links and
	// players, ordered by start time and link id.
	DayRows(ctx context.Context, date string) ([]DayRow, error)
	FindBySlot(ctx context.Context, date, startTime string) ([]Booking, error)
	Links(ctx context.Context, bookingID int64) ([]Link, error)

	CreateBooking(ctx context.Context, b *Booking) error
	UpdateBooking(ctx context.Context, id int64, courts []int, totalPrice int64) error

	// AddLink reports false when the player was already linked to the booking.
	AddLink(ctx context.Context, l *Link) (bool, error)
	UpdateLink(ctx context.Context, id int64, amountDue int64, hasPaid bool) error

	RemovePlayerFromDate(ctx context.Context, date string, playerID int64) (int64, error)
	// DeleteDay removes the bookings of the date, limited to the given start
	// times when any are given, together with their links.
	DeleteDay(ctx context.Context, date string, slots []string) (bookings int64, links int64, err error)

	BookedDates(ctx context.Context, from, to string) ([]string, error)
	Dues(ctx context.Context, date string) ([]Due, error)
}
