// Package metrics defines and registers the custom Prometheus metrics of the
// tracker. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── State metrics ─────────────────────────────────────────────────────────────

// MutationsTotal counts state mutations.
// Labels:
//   - operation: the handler name (e.g. "upsert_record", "send_message")
//   - result: "ok", "rejected" (domain error, state untouched) or "error" (persistence failure)
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of state mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// StoreOperationDuration measures document store round-trips.
// Labels:
//   - operation: "load", "save" or "clear_session"
//   - driver: "file", "redis" or "mongo"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of state document reads and writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "driver"},
)

// DocumentMigrationsTotal counts backfill steps applied while loading.
// Label:
//   - step: migration name (e.g. "backfill-messages")
var DocumentMigrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_migrations_total",
		Help:      "Total number of backfill steps applied to loaded documents.",
	},
	[]string{"step"},
)

// ── Insight metrics ───────────────────────────────────────────────────────────

// InsightRequestsTotal counts text-generation outcomes.
// Labels:
//   - kind: "journal_summary" or "inspiration"
//   - result: "generated", "fallback", "cached" or "skipped"
var InsightRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insight_requests_total",
		Help:      "Total number of insight requests, by kind and result.",
	},
	[]string{"kind", "result"},
)

// InsightDuration measures collaborator calls.
// Label:
//   - kind: "journal_summary" or "inspiration"
var InsightDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "insight_duration_seconds",
		Help:      "Duration of calls to the text-generation collaborator.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 30},
	},
	[]string{"kind"},
)

// InsightQueueDepth tracks records waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var InsightQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "insight_queue_depth",
		Help:      "Current number of records pending in each insight worker channel.",
	},
	[]string{"worker_id"},
)

// InsightDroppedTotal counts records not enqueued because a worker channel was full.
var InsightDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insight_dropped_total",
		Help:      "Total number of inspiration jobs dropped on a full queue.",
	},
)
