// Package metrics defines and registers all custom Prometheus metrics for
// the GLC portal. It is the single source of truth for metric names, labels,
// and help strings; metrics self-register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "glc_portal"

// ── Navigation metrics ────────────────────────────────────────────────────────

// NavigationsTotal counts page navigations served by the navigation core.
// Labels:
//   - page: the resolved page id (unknown ids count under "not-found")
//   - role: the session role performing the navigation
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigations_total",
		Help:      "Total number of page navigations, by resolved page and role.",
	},
	[]string{"page", "role"},
)

// StaleRendersTotal counts navigations whose render lost the race against a
// newer navigation in the same visit and was discarded by the shell.
var StaleRendersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_renders_total",
		Help:      "Total number of completed renders discarded as stale.",
	},
)

// ViewErrorsTotal counts view renders that failed and were replaced by an
// inline error fragment.
// Label:
//   - page: the page whose view failed
var ViewErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_errors_total",
		Help:      "Total number of view failures rendered as inline error fragments.",
	},
	[]string{"page"},
)

// ActiveVisits tracks how many portal visits currently hold server-side
// navigation state.
var ActiveVisits = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_visits",
		Help:      "Current number of visits with live navigation state.",
	},
)

// ── Backend client metrics ────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the green-lending backend API.
// Labels:
//   - op: the logical endpoint (e.g. "my_applications", "upload_document")
//   - outcome: "ok", "http_error", "timeout", "unreachable" or "canceled"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API calls, by endpoint and outcome.",
	},
	[]string{"op", "outcome"},
)

// BackendRequestDuration measures backend call latency end-to-end,
// response body read included.
// Label:
//   - op: the logical endpoint
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API calls from request start to body read.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// DocumentUploadsTotal counts individual files pushed through the
// sequential uploader.
// Label:
//   - result: "uploaded" or "failed"
var DocumentUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_uploads_total",
		Help:      "Total number of document uploads attempted, by result.",
	},
	[]string{"result"},
)

// ── Draft metrics ─────────────────────────────────────────────────────────────

// DraftOpsTotal counts form-draft store operations.
// Labels:
//   - op: "save", "load" or "delete"
//   - result: "ok", "miss" or "error"
var DraftOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draft_ops_total",
		Help:      "Total number of draft store operations, by operation and result.",
	},
	[]string{"op", "result"},
)
