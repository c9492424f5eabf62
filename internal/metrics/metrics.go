package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trackwire_events_built_total",
		Help: "Total number of canonical event records built, labelled by message type.",
	}, []string{"message_type"})

	EventsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackwire_events_suppressed_total",
		Help: "Total number of events dropped because no session was active.",
	})

	EventsEncoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trackwire_events_encoded_total",
		Help: "Total number of records encoded to wire DTOs, labelled by message type.",
	}, []string{"message_type"})

	CustomFlagsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackwire_custom_flags_dropped_total",
		Help: "Total number of custom flag properties discarded during normalization.",
	})

	TransportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackwire_transport_failures_total",
		Help: "Total number of DTOs the transport failed to send.",
	})

	EncodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trackwire_encode_duration_us",
		Help:    "Wire encoding latency in microseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)
