package scheduler

import (
	"context"
	"time"

	"github.com/dan-burt/padelbook1/internal/booking"
	"github.com/dan-burt/padelbook1/internal/logger"
)

const reminderJobName = "fee_reminders"

type Reminders interface {
	SendReminders(ctx context.Context, date string) (*booking.ReminderResult, error)
}

// RegisterReminderJob emails every unpaid player booked on the day the job fires.
func RegisterReminderJob(s *Scheduler, reminders Reminders, cronExpr string, timeout time.Duration) error {
	_, err := s.AddJob(reminderJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		runReminders(ctx, reminders, time.Now())
	})
	return err
}

func runReminders(ctx context.Context, reminders Reminders, now time.Time) {
	date := now.Format(booking.DateLayout)

	result, err := reminders.SendReminders(ctx, date)
	if err != nil {
		logger.Error("Reminder job failed", "date", date, "error", err)
		return
	}
	logger.Info("Reminder job finished", "date", date, "queued", result.Queued, "skipped", result.Skipped)
}
