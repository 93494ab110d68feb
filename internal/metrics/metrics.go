package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engage_events_total",
			Help: "Interaction events handled by action and result",
		},
		[]string{"action", "result"},
	)

	EventDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engage_event_duration_seconds",
			Help:    "Time spent handling one interaction event",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engage_renders_total",
			Help: "Render decisions by status (skipped, applied, failed, none)",
		},
		[]string{"status"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engage_notifications_total",
			Help: "Author notifications by kind and result",
		},
		[]string{"kind", "result"},
	)

	PromotionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engage_promotions_total",
			Help: "Items promoted (pinned) after crossing the like threshold",
		},
	)

	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "engage_update_queue_depth",
			Help: "Telegram updates waiting for a worker",
		},
	)
)

func init() {
	prometheus.MustRegister(
		EventsTotal,
		EventDuration,
		RendersTotal,
		NotificationsTotal,
		PromotionsTotal,
		QueueDepth,
	)
}

// Handler 暴露 Prometheus 指标
func Handler() http.Handler {
	return promhttp.Handler()
}
