package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craveconnect_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "craveconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RelayConnections is the gauge of open relay websocket connections.
	RelayConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "craveconnect_relay_connections",
		Help: "Number of open relay websocket connections",
	})

	// PresenceEntries is the gauge of sessions that completed a join.
	PresenceEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "craveconnect_presence_entries",
		Help: "Number of joined sessions in the presence registry",
	})

	// RelayEvents counts inbound relay events by name and outcome.
	RelayEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craveconnect_relay_events_total",
		Help: "Inbound relay events by event name and outcome",
	}, []string{"event", "outcome"})

	// RelayBackpressureDrops counts frames dropped because a client could not keep up.
	RelayBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craveconnect_relay_backpressure_drops_total",
		Help: "Outbound relay frames dropped due to backpressure",
	}, []string{"reason"})

	// OutboxProcessed counts outbox rows handled by the dispatcher by result.
	OutboxProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craveconnect_outbox_processed_total",
		Help: "Notification outbox rows processed by result",
	}, []string{"result"})

	// OutboxLag records the delay between enqueue and delivery.
	OutboxLag = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "craveconnect_outbox_lag_seconds",
		Help:    "Time from outbox enqueue to notification creation",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})
)
