package trivia

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels besides the error kinds.
const (
	outcomeOK        = "ok"
	outcomeExhausted = "exhausted"
)

// Metrics records per-operation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	eligible   prometheus.Histogram
}

// NewMetrics registers the trivia collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "operations_total",
			Help:      "Trivia operations by outcome.",
		}, []string{"operation", "outcome"}),
		eligible: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trivia",
			Name:      "quiz_eligible_questions",
			Help:      "Size of the eligible set at each quiz draw.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
	}
	reg.MustRegister(m.operations, m.eligible)
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = Classify(err).Kind.String()
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) observeDraw(eligible int) {
	if m == nil {
		return
	}
	m.eligible.Observe(float64(eligible))
	if eligible == 0 {
		m.operations.WithLabelValues(opNextQuestion, outcomeExhausted).Inc()
		return
	}
	m.operations.WithLabelValues(opNextQuestion, outcomeOK).Inc()
}
