package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dan-burt/padelbook1/internal/booking"
)

type MockReminders struct {
	mock.Mock
}

func (m *MockReminders) SendReminders(ctx context.Context, date string) (*booking.ReminderResult, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.ReminderResult), args.Error(1)
}

func newScheduler(t *testing.T) *Scheduler {
	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestAddJob(t *testing.T) {
	s := newScheduler(t)

	t.Run("registered", func(t *testing.T) {
		job, err := s.AddJob("nightly", "0 18 * * *", func() {})
		require.NoError(t, err)
		assert.Equal(t, "nightly", job.Name())
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := s.AddJob(" ", "0 18 * * *", func() {})
		assert.ErrorIs(t, err, ErrEmptyJobName)
	})

	t.Run("missing cron", func(t *testing.T) {
		_, err := s.AddJob("nightly", "", func() {})
		assert.ErrorIs(t, err, ErrEmptyCronExpr)
	})

	t.Run("bad cron", func(t *testing.T) {
		_, err := s.AddJob("nightly", "every evening", func() {})
		assert.Error(t, err)
	})
}

func TestStop_Twice(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	s.Start()

	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
}

func TestRegisterReminderJob(t *testing.T) {
	s := newScheduler(t)
	reminders := new(MockReminders)

	require.NoError(t, RegisterReminderJob(s, reminders, "0 18 * * *", time.Minute))

	jobs := s.cron.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, reminderJobName, jobs[0].Name())
	reminders.AssertNotCalled(t, "SendReminders", mock.Anything, mock.Anything)
}

func TestRunReminders(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	t.Run("uses the current date", func(t *testing.T) {
		reminders := new(MockReminders)
		reminders.On("SendReminders", mock.Anything, "2024-05-01").Return(&booking.ReminderResult{Queued: 2, Skipped: 1}, nil)

		runReminders(context.Background(), reminders, now)

		reminders.AssertExpectations(t)
	})

	t.Run("errors are logged not raised", func(t *testing.T) {
		reminders := new(MockReminders)
		reminders.On("SendReminders", mock.Anything, "2024-05-01").Return(nil, booking.ErrRemindersDisabled)

		assert.NotPanics(t, func() {
			runReminders(context.Background(), reminders, now)
		})
		reminders.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		reminders := new(MockReminders)
		reminders.On("SendReminders", mock.Anything, "2024-05-01").Return(nil, errors.New("connection refused"))

		runReminders(context.Background(), reminders, now)

		reminders.AssertExpectations(t)
	})
}
