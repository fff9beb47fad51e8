// Package prometheus provides Prometheus collectors for Aurora conversation
// requests and payment dialogs.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aurora"

var (
	// providerRequestDuration is a histogram of conversation API call duration.
	providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of conversation API calls in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60},
		},
		[]string{"provider"},
	)

	// providerRequestsTotal is a counter of conversation API calls.
	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of conversation API calls",
		},
		[]string{"provider", "status"}, // status: success, error, timeout
	)

	// providerTokensTotal is a counter of tokens consumed by conversation calls.
	providerTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_tokens_total",
			Help:      "Total tokens consumed by conversation calls",
		},
		[]string{"provider", "type"}, // type: input, output
	)

	// paymentDialogsTotal is a counter of payment dialog outcomes.
	paymentDialogsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_dialog_outcomes_total",
			Help:      "Total number of payment dialog submissions and closes by outcome",
		},
		[]string{"outcome"}, // outcome: invalid, failed, succeeded, cancelled
	)

	// paymentAmountTotal is a counter of simulated revenue by target tier.
	paymentAmountTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_amount_dollars_total",
			Help:      "Total simulated payment amount in dollars",
		},
		[]string{"tier"},
	)

	// allMetrics is a list of all metrics for registration.
	allMetrics = []prometheus.Collector{
		providerRequestDuration,
		providerRequestsTotal,
		providerTokensTotal,
		paymentDialogsTotal,
		paymentAmountTotal,
	}
)

// Status and outcome label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"

	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeSucceeded = "succeeded"
	OutcomeCancelled = "cancelled"
)

// RecordProviderRequest records a conversation API call.
func RecordProviderRequest(provider, status string, durationSeconds float64) {
	providerRequestDuration.WithLabelValues(provider).Observe(durationSeconds)
	providerRequestsTotal.WithLabelValues(provider, status).Inc()
}

// RecordProviderTokens records token consumption.
func RecordProviderTokens(provider string, inputTokens, outputTokens int) {
	if inputTokens > 0 {
		providerTokensTotal.WithLabelValues(provider, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		providerTokensTotal.WithLabelValues(provider, "output").Add(float64(outputTokens))
	}
}

// RecordPaymentOutcome records one dialog outcome.
func RecordPaymentOutcome(outcome string) {
	paymentDialogsTotal.WithLabelValues(outcome).Inc()
}

// RecordPaymentAmount records the amount of a successful payment.
func RecordPaymentAmount(tier string, amount float64) {
	if amount > 0 {
		paymentAmountTotal.WithLabelValues(tier).Add(amount)
	}
}
