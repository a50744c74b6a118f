package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github/chapool/go-txsigner/internal/wallet/confirm"
)

const namespace = "txsigner"

// Service collects sign request metrics on its own registry so several
// servers (e.g. in parallel tests) never collide on the global one
type Service struct {
	Registry *prometheus.Registry

	requests         *prometheus.CounterVec
	inFlight         prometheus.Gauge
	approvalDuration *prometheus.HistogramVec

	mu              sync.Mutex
	awaitingSinceNs map[string]int64
}

func New() *Service {
	s := &Service{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_requests_total",
			Help:      "Total number of finished sign requests by outcome",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sign_requests_in_flight",
			Help:      "Number of sign requests currently being processed",
		}),
		approvalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "approval_duration_seconds",
			Help:      "Time between asking for approval and the decision",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"decision"}),
		awaitingSinceNs: make(map[string]int64),
	}

	s.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.requests,
		s.inFlight,
		s.approvalDuration,
	)

	return s
}

// OnTransition implements confirm.Observer
func (s *Service) OnTransition(transition confirm.Transition) {
	switch transition.To {
	case confirm.StateAwaitingApproval:
		s.inFlight.Inc()
		s.mu.Lock()
		s.awaitingSinceNs[transition.RequestID] = transition.At.UnixNano()
		s.mu.Unlock()
	case confirm.StateFailed:
		// Requests failing before approval never entered AwaitingApproval
		if transition.From != confirm.StateIdle {
			s.inFlight.Dec()
		}
		s.requests.WithLabelValues(transition.To.String()).Inc()
	case confirm.StateApproved, confirm.StateRejected:
		s.observeDecision(transition)
	case confirm.StateCompleted, confirm.StateAborted:
		s.inFlight.Dec()
		s.requests.WithLabelValues(transition.To.String()).Inc()
	case confirm.StateIdle, confirm.StateDerivingKey, confirm.StateSigning:
	}
}

func (s *Service) observeDecision(transition confirm.Transition) {
	s.mu.Lock()
	since, ok := s.awaitingSinceNs[transition.RequestID]
	delete(s.awaitingSinceNs, transition.RequestID)
	s.mu.Unlock()

	if !ok {
		return
	}

	seconds := float64(transition.At.UnixNano()-since) / 1e9
	s.approvalDuration.WithLabelValues(transition.To.String()).Observe(seconds)
}
