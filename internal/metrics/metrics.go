package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padelbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "padelbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padelbook_saves_total",
			Help: "Total number of day saves by result",
		},
		[]string{"result"},
	)

	SaveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "padelbook_save_duration_seconds",
			Help:    "Time spent reconciling a day save",
			Buckets: prometheus.DefBuckets,
		},
	)

	SlotOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padelbook_slot_outcomes_total",
			Help: "Per-slot reconciliation outcomes",
		},
		[]string{"outcome"},
	)

	FailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padelbook_failures_total",
			Help: "Booking failures by kind",
		},
		[]string{"kind"},
	)

	LinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padelbook_booking_links_total",
			Help: "Booking-player link mutations",
		},
		[]string{"op"},
	)

	DayDeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "padelbook_day_deletions_total",
			Help: "Total number of day deletions",
		},
	)

	CalendarCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padelbook_calendar_cache_total",
			Help: "Calendar cache lookups by result",
		},
		[]string{"result"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padelbook_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "padelbook_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordSave counts a finished save. result is "ok", "partial" or "invalid".
func RecordSave(result string, seconds float64) {
	SavesTotal.WithLabelValues(result).Inc()
	if result != "invalid" {
		SaveDuration.Observe(seconds)
	}
}

func RecordSlotOutcome(outcome string) {
	SlotOutcomesTotal.WithLabelValues(outcome).Inc()
}

func RecordFailure(kind string) {
	FailuresTotal.WithLabelValues(kind).Inc()
}

func RecordLinks(op string, n int) {
	if n <= 0 {
		return
	}
	LinksTotal.WithLabelValues(op).Add(float64(n))
}

func RecordDayDeletion() {
	DayDeletionsTotal.Inc()
}

func RecordCacheLookup(result string) {
	CalendarCacheTotal.WithLabelValues(result).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
