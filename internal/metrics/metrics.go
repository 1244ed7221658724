package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels successful operations.
	OutcomeSuccess = "success"
	// OutcomeError labels failed operations (missing artifacts, decode failures).
	OutcomeError = "error"
)

var (
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loan_approval",
			Name:      "decisions_total",
			Help:      "Total number of loan decisions, partitioned by mode and decision.",
		},
		[]string{"mode", "decision"},
	)

	decisionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loan_approval",
			Name:      "decision_errors_total",
			Help:      "Total number of failed decision requests, partitioned by reason.",
		},
		[]string{"reason"},
	)

	decisionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "loan_approval",
			Name:      "decision_seconds",
			Help:      "Decision latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	approvalProbability = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "loan_approval",
			Name:      "approval_probability",
			Help:      "Distribution of the probability compared against the mode threshold.",
			Buckets:   prometheus.LinearBuckets(0.05, 0.05, 19),
		},
		[]string{"mode"},
	)

	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loan_approval",
			Name:      "model_loads_total",
			Help:      "Total number of model artifact loads, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	modelLoadDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "loan_approval",
			Name:      "model_load_seconds",
			Help:      "Model artifact load latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
	)
)

// Register attaches loan-approval collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		decisionsTotal,
		decisionErrorsTotal,
		decisionDurationSeconds,
		approvalProbability,
		modelLoadsTotal,
		modelLoadDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveDecision records a completed decision.
func ObserveDecision(duration time.Duration, mode string, decision int, probability float64) {
	label := "rejected"
	if decision == 1 {
		label = "approved"
	}
	decisionsTotal.WithLabelValues(mode, label).Inc()
	approvalProbability.WithLabelValues(mode).Observe(probability)
	decisionDurationSeconds.Observe(clamp(duration).Seconds())
}

// ObserveDecisionError records a failed decision request.
func ObserveDecisionError(reason string) {
	decisionErrorsTotal.WithLabelValues(reason).Inc()
}

// ObserveModelLoad records an artifact load duration and outcome label.
func ObserveModelLoad(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	modelLoadsTotal.WithLabelValues(label).Inc()
	modelLoadDurationSeconds.Observe(clamp(duration).Seconds())
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
