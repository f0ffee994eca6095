package scheduler

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/dan-burt/padelbook1/internal/logger"
)

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyCronExpr = errors.New("cron expression is required")
)

// Scheduler wraps a gocron scheduler for background jobs.
type Scheduler struct {
	cron     gocron.Scheduler
	stopOnce sync.Once
	stopErr  error
}

func New() (*Scheduler, error) {
	cron, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("Scheduler job panicked",
						"job_id", jobID.String(),
						"job_name", jobName,
						"panic", recoverData,
					)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: cron}, nil
}

func (s *Scheduler) Start() {
	logger.Info("Scheduler starting", "jobs", len(s.cron.Jobs()))
	s.cron.Start()
}

// Stop waits for running jobs and is safe to call more than once.
func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		logger.Info("Scheduler stopping")
		s.stopErr = s.cron.Shutdown()
	})
	return s.stopErr
}

// AddJob registers task under a standard five-field cron expression.
func (s *Scheduler) AddJob(name, cronExpr string, task func()) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}
	jobLog := logger.With("job_name", name, "cron", cronExpr)

	wrapped := func() {
		jobLog.Debug("Scheduler job started")
		task()
		jobLog.Debug("Scheduler job completed")
	}

	job, err := s.cron.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(wrapped),
		gocron.WithName(name),
	)
	if err != nil {
		jobLog.Error("Failed to register scheduler job", "error", err)
		return nil, err
	}
	jobLog.Info("Scheduler job registered")
	return job, nil
}
