// Package prometheus exposes assistant metrics with the Prometheus client.
package prometheus

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/stratchat"
	"github.com/prometheus/client_golang/prometheus"
)

// Ensure Responder implements stratchat.Responder.
var _ stratchat.Responder = (*Responder)(nil)

// Responder wraps a Responder with turn counters and latency histograms.
type Responder struct {
	next stratchat.Responder

	turns    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewResponder creates a Responder and registers its collectors with reg.
func NewResponder(next stratchat.Responder, reg prometheus.Registerer) (*Responder, error) {
	r := &Responder{
		next: next,
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stratchat",
			Name:      "turns_total",
			Help:      "Answered turns by intent and strategy.",
		}, []string{"intent", "strategy"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stratchat",
			Name:      "turn_errors_total",
			Help:      "Failed turns by error code.",
		}, []string{"code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stratchat",
			Name:      "turn_duration_seconds",
			Help:      "Turn latency by strategy.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"strategy"}),
	}
	for _, c := range []prometheus.Collector{r.turns, r.errors, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Respond delegates to the wrapped responder and records the outcome.
func (r *Responder) Respond(ctx context.Context, req stratchat.TurnRequest, w io.Writer) (*stratchat.Turn, error) {
	begin := time.Now()
	turn, err := r.next.Respond(ctx, req, w)
	if err != nil {
		r.errors.WithLabelValues(stratchat.ErrorCode(err)).Inc()
		return nil, err
	}
	r.turns.WithLabelValues(string(turn.Intent), string(turn.Strategy)).Inc()
	r.duration.WithLabelValues(string(turn.Strategy)).Observe(time.Since(begin).Seconds())
	return turn, nil
}

// RegisterKnowledge exposes the size and load time of the current
// knowledge snapshot.
func RegisterKnowledge(reg prometheus.Registerer, source stratchat.KnowledgeSource) error {
	entries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "stratchat",
		Name:      "knowledge_entries",
		Help:      "Entries in the current knowledge snapshot.",
	}, func() float64 {
		return float64(len(source.Knowledge().Entries()))
	})
	loaded := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "stratchat",
		Name:      "knowledge_loaded_timestamp_seconds",
		Help:      "Load time of the current knowledge snapshot.",
	}, func() float64 {
		k := source.Knowledge()
		if k == nil || k.LoadedAt.IsZero() {
			return 0
		}
		return float64(k.LoadedAt.Unix())
	})
	for _, c := range []prometheus.Collector{entries, loaded} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
