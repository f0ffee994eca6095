package booking

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dan-burt/padelbook1/internal/court"
	"github.com/dan-burt/padelbook1/internal/fee"
	"github.com/dan-burt/padelbook1/internal/player"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) DayRows(ctx context.Context, date string) ([]DayRow, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DayRow), args.Error(1)
}

func (m *MockRepo) FindBySlot(ctx context.Context, date, startTime string) ([]Booking, error) {
	args := m.Called(ctx, date, startTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepo) Links(ctx context.Context, bookingID int64) ([]Link, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Link), args.Error(1)
}

func (m *MockRepo) CreateBooking(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepo) UpdateBooking(ctx context.Context, id int64, courts []int, totalPrice int64) error {
	args := m.Called(ctx, id, courts, totalPrice)
	return args.Error(0)
}

func (m *MockRepo) AddLink(ctx context.Context, l *Link) (bool, error) {
	args := m.Called(ctx, l)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) UpdateLink(ctx context.Context, id int64, amountDue int64, hasPaid bool) error {
	args := m.Called(ctx, id, amountDue, hasPaid)
	return args.Error(0)
}

func (m *MockRepo) RemovePlayerFromDate(ctx context.Context, date string, playerID int64) (int64, error) {
	args := m.Called(ctx, date, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepo) DeleteDay(ctx context.Context, date string, slots []string) (int64, int64, error) {
	args := m.Called(ctx, date, slots)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepo) BookedDates(ctx context.Context, from, to string) ([]string, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepo) Dues(ctx context.Context, date string) ([]Due, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Due), args.Error(1)
}

type MockPlayerRepo struct{ mock.Mock }

func (m *MockPlayerRepo) Upsert(ctx context.Context, name string) (*player.Player, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*player.Player), args.Error(1)
}

func (m *MockPlayerRepo) List(ctx context.Context) ([]player.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]player.Player), args.Error(1)
}

// stubCourts is a fixed two-court catalogue at the given rates.
type stubCourts struct {
	rates fee.RateCard
	err   error
}

func newStubCourts(rate1, rate2 int64) *stubCourts {
	rc := fee.NewRateCard(fee.DefaultBaseRate)
	rc.PerCourt[1] = rate1
	rc.PerCourt[2] = rate2
	return &stubCourts{rates: rc}
}

func (s *stubCourts) List(ctx context.Context) ([]court.Court, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []court.Court{
		{ID: 1, Name: "Court 1", HourlyRate: s.rates.Rate(1)},
		{ID: 2, Name: "Court 2", HourlyRate: s.rates.Rate(2)},
	}, nil
}

func (s *stubCourts) Rates(ctx context.Context) (fee.RateCard, error) {
	if s.err != nil {
		return fee.RateCard{}, s.err
	}
	return s.rates, nil
}

func (s *stubCourts) Clean(ctx context.Context, ids []int) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return court.NewService(courtList{s}, fee.DefaultBaseRate).Clean(ctx, ids)
}

type courtList struct{ s *stubCourts }

func (c courtList) List(ctx context.Context) ([]court.Court, error) { return c.s.List(ctx) }

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(ctx context.Context, year, month int) ([]string, bool, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, year, month int, dates []string) error {
	args := m.Called(ctx, year, month, dates)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, year, month int) error {
	args := m.Called(ctx, year, month)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendFeeReminder(ctx context.Context, to, name, date string, amount int64) error {
	args := m.Called(ctx, to, name, date, amount)
	return args.Error(0)
}

type MockService struct{ mock.Mock }

func (m *MockService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Quote), args.Error(1)
}

func (m *MockService) LoadDay(ctx context.Context, date string) (*Day, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Day), args.Error(1)
}

func (m *MockService) BookedDates(ctx context.Context, year, month int) ([]string, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockService) Save(ctx context.Context, date string, req SaveRequest) (*SaveResult, error) {
	args := m.Called(ctx, date, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SaveResult), args.Error(1)
}

func (m *MockService) RemovePlayer(ctx context.Context, date string, playerID int64) (*RemoveResult, error) {
	args := m.Called(ctx, date, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RemoveResult), args.Error(1)
}

func (m *MockService) DeleteDay(ctx context.Context, date string, slots []string) (*DeleteResult, error) {
	args := m.Called(ctx, date, slots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeleteResult), args.Error(1)
}

func (m *MockService) SendReminders(ctx context.Context, date string) (*ReminderResult, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ReminderResult), args.Error(1)
}
