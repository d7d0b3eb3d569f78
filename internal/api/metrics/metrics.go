// Package metrics defines and registers all custom Prometheus metrics for the
// hybrid shell. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

const namespace = "hybrid_shell"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "missing_credentials", "invalid_request", "no_response",
//     "malformed_response", "unauthorized", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout calls, including no-op logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout calls.",
	},
)

// ── Provisioning metrics ──────────────────────────────────────────────────────

// ProvisioningTotal counts best-effort provisioning jobs.
// Label:
//   - result: "ok", "failed" or "dropped"
var ProvisioningTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provisioning_total",
		Help:      "Total number of post-login provisioning jobs, by result.",
	},
	[]string{"result"},
)

// ProvisionQueueDepth tracks jobs waiting in each dispatcher worker channel.
var ProvisionQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "provision_queue_depth",
		Help:      "Current number of provisioning jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

var ProvisionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provision_duration_seconds",
		Help:      "Duration of the provisioning call.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ProvisioningRecorder feeds dispatcher observations into the provisioning
// metrics above.
type ProvisioningRecorder struct{}

func (ProvisioningRecorder) JobFinished(result string, elapsed time.Duration) {
	ProvisioningTotal.WithLabelValues(result).Inc()
	if result != "dropped" {
		ProvisionDuration.Observe(elapsed.Seconds())
	}
}

func (ProvisioningRecorder) QueueDepth(worker string, depth int) {
	ProvisionQueueDepth.WithLabelValues(worker).Set(float64(depth))
}

// ── Content metrics ───────────────────────────────────────────────────────────

// NavigationDecisionsTotal counts navigation guard verdicts.
// Labels:
//   - decision: "allow", "handoff_external" or "deny"
//   - kind: the navigation kind reported by the host
var NavigationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigation_decisions_total",
		Help:      "Total number of navigation guard decisions.",
	},
	[]string{"decision", "kind"},
)

// LifecycleCallbacksTotal counts host lifecycle callbacks.
// Labels:
//   - event: "started", "finished" or "failed"
//   - outcome: "applied", "stale" or "rejected"
var LifecycleCallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_callbacks_total",
		Help:      "Total number of content lifecycle callbacks, by outcome.",
	},
	[]string{"event", "outcome"},
)

var ViewReloadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_reloads_total",
		Help:      "Total number of content view reloads (new load epochs).",
	},
)

var ViewsOpen = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "views_open",
		Help:      "Number of content views currently open.",
	},
)

// LoginResult maps a login error to the LoginsTotal result label.
func LoginResult(err error) string {
	var rejected *domain.ServerRejectedError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, domain.ErrNoResponse):
		return "no_response"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.As(err, &rejected):
		return "rejected"
	default:
		return "error"
	}
}
