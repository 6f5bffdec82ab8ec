// Package prom implements metrics.Recorder with Prometheus collectors.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/midinotify/midinotify-go/pkg/metrics"
)

// Recorder is a Prometheus-backed metrics.Recorder.
type Recorder struct {
	decoded  *prometheus.CounterVec
	failed   *prometheus.CounterVec
	panicked prometheus.Counter
}

// NewRecorder creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "midinotify_notifications_decoded_total",
			Help: "Total number of host notifications decoded, by type",
		}, []string{"kind"}),

		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "midinotify_decode_errors_total",
			Help: "Total number of host notifications that failed to decode, by reason",
		}, []string{"reason"}),

		panicked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "midinotify_handler_panics_total",
			Help: "Total number of notification handlers that panicked",
		}),
	}

	if reg != nil {
		reg.MustRegister(r.decoded, r.failed, r.panicked)
	}
	return r
}

func (r *Recorder) NotificationDecoded(kind string) {
	r.decoded.WithLabelValues(kind).Inc()
}

func (r *Recorder) DecodeFailed(reason string) {
	r.failed.WithLabelValues(reason).Inc()
}

func (r *Recorder) HandlerPanicked() {
	r.panicked.Inc()
}

var _ metrics.Recorder = (*Recorder)(nil)
