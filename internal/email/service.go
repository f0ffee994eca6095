package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dan-burt/padelbook1/internal/logger"
	"github.com/dan-burt/padelbook1/internal/metrics"
)

const (
	queueKey  = "emails"
	failedKey = "emails:failed"

	maxTries   = 3
	retryDelay = 5 * time.Second
)

type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Settings struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

type Service struct {
	redis      *redis.Client
	settings   Settings
	deliver    func(Job) error
	retryDelay time.Duration
}

// New builds a queue-backed mailer on a shared Redis client.
func New(client *redis.Client, settings Settings) *Service {
	s := &Service{
		redis:      client,
		settings:   settings,
		retryDelay: retryDelay,
	}
	s.deliver = s.sendNow
	return s
}

func (s *Service) Send(ctx context.Context, kind, to, name, subject, body string) error {
	job := Job{
		Type:    kind,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("Failed to queue email", "to", to, "error", err)
		return err
	}

	logger.Debug("Email queued", "type", kind, "to", to)
	return nil
}

// SendFeeReminder queues a reminder of what a player owes for a date.
func (s *Service) SendFeeReminder(ctx context.Context, to, name, date string, amount int64) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("reminder date: %w", err)
	}

	subject := "Court fees for " + day.Format("Mon 2 Jan")
	body := fmt.Sprintf(`Hi %s,

You still owe %d for the courts on %s.

Please settle up with the organiser.

- %s`, name, amount, day.Format("Monday 2 January 2006"), s.settings.FromName)

	return s.Send(ctx, "fee_reminder", to, name, subject, body)
}

// Start consumes the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Warn("Email queue read failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("Dropping malformed email job", "error", err)
		return
	}

	job.Tries++
	if err := s.deliver(job); err != nil {
		logger.Warn("Email delivery failed", "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			s.requeue(ctx, job)
			return
		}
		metrics.RecordEmail(job.Type, "failed")
		s.saveFailed(ctx, job, err)
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("Email sent", "type", job.Type, "to", job.To)
}

func (s *Service) requeue(ctx context.Context, job Job) {
	select {
	case <-ctx.Done():
	case <-time.After(s.retryDelay):
	}

	data, _ := json.Marshal(job)
	if err := s.redis.LPush(context.WithoutCancel(ctx), queueKey, string(data)).Err(); err != nil {
		logger.Error("Failed to requeue email", "to", job.To, "error", err)
	}
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.settings.FromName, s.settings.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.settings.SMTPUser != "" && s.settings.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.settings.SMTPUser, s.settings.SMTPPass, s.settings.SMTPHost)
	}

	addr := s.settings.SMTPHost + ":" + s.settings.SMTPPort
	return smtp.SendMail(addr, auth, s.settings.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(ctx context.Context, job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	if err := s.redis.LPush(context.WithoutCancel(ctx), failedKey, string(data)).Err(); err != nil {
		logger.Error("Failed to record failed email", "to", job.To, "error", err)
		return
	}
	logger.Error("Email moved to failed queue", "to", job.To, "tries", job.Tries)
}

// QueueLength reports and publishes the number of pending emails.
func (s *Service) QueueLength(ctx context.Context) int64 {
	length, err := s.redis.LLen(ctx, queueKey).Result()
	if err != nil {
		logger.Warn("Failed to read email queue length", "error", err)
		return 0
	}
	metrics.EmailQueueLength.Set(float64(length))
	return length
}
