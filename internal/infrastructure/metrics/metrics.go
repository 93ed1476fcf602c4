package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Support API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	ConversationsResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "conversations_resolved_total",
			Help:      "Total conversations resolved",
		},
	)

	// Ledger
	MessagesAppendedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "messages_appended_total",
			Help:      "Total messages appended to conversation ledgers",
		},
		[]string{"role", "channel"},
	)

	// Routing
	ChannelSwitchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "channel_switches_total",
			Help:      "Total successful channel switches",
		},
		[]string{"channel"},
	)

	// Assistant calls
	AssistantRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "assistant_replies_total",
			Help:      "Assistant reply attempts by outcome",
		},
		[]string{"status"},
	)

	AssistantDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "assistant_duration_seconds",
			Help:      "Assistant completion call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "support_api",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"status"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordMessageAppended records one ledger append
func RecordMessageAppended(role, channel string) {
	MessagesAppendedTotal.WithLabelValues(role, channel).Inc()
}

// RecordChannelSwitch records one successful channel switch
func RecordChannelSwitch(channel string) {
	ChannelSwitchesTotal.WithLabelValues(channel).Inc()
}

// RecordAssistantReply records an assistant call outcome
func RecordAssistantReply(status string, durationSec float64) {
	AssistantRepliesTotal.WithLabelValues(status).Inc()
	AssistantDuration.Observe(durationSec)
}

// RecordAuthRequest records an authentication attempt
func RecordAuthRequest(status string) {
	AuthRequestsTotal.WithLabelValues(status).Inc()
}
