package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remoteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "emergency_remote_request_duration_seconds",
		Help:    "Latency of timed operations against remote collaborators and stores",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	}, []string{"op"})

	sosDispatch = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emergency_sos_dispatch_total",
		Help: "SOS dispatch attempts by outcome",
	}, []string{"outcome"})

	guidanceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emergency_guidance_requests_total",
		Help: "Guidance requests by terminal outcome",
	}, []string{"outcome"})

	numberFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emergency_number_fallback_total",
		Help: "Emergency number resolutions that fell back to the default",
	})
)

// SOS outcomes: sent, no_contacts, location_unavailable, send_failed.
func ObserveSOS(outcome string) { sosDispatch.WithLabelValues(outcome).Inc() }

// Guidance outcomes: resolved, recovered, timed_out, superseded, abandoned.
func ObserveGuidance(outcome string) { guidanceRequests.WithLabelValues(outcome).Inc() }

func ObserveNumberFallback() { numberFallbacks.Inc() }
