package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
	Timeout Outcome = "timeout"
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}
	// Saga steps include bridge waits measured in minutes.
	sagaStepBucketsSeconds = []float64{1, 5, 30, 60, 300, 900, 1800}

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)
	sagaStepDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saga_step_duration_seconds",
			Help:    "Histogram of saga step durations in seconds.",
			Buckets: sagaStepBucketsSeconds,
		},
		[]string{"saga", "step", "outcome"},
	)
	sagaOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_outcomes_total",
			Help: "Number of completed saga runs by saga and error code.",
		},
		[]string{"saga", "outcome", "error_code"},
	)
	clientRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"client", "method", "outcome"},
	)
	queueMessageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_messages_processed_total",
			Help: "Number of queue messages handled by queue and outcome.",
		},
		[]string{"queue", "outcome"},
	)
	monitoredUsersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rewards_monitored_users",
			Help: "Number of users with an active rewards monitor.",
		},
	)
)

// Init registers the collectors and serves /metrics on addr. Only the first
// call has an effect.
func Init(addr string) {
	once.Do(func() {
		registerMetrics()
		serveMetrics(addr)
	})
}

func serveMetrics(addr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, metricsRouter); err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", addr)
		}
	}()
}

// registerMetrics registers the Prometheus collectors with the default registry.
func registerMetrics() {
	prometheus.MustRegister(
		httpRequestDurationHistogram,
		sagaStepDurationHistogram,
		sagaOutcomeCounter,
		clientRequestLatency,
		queueMessageCounter,
		monitoredUsersGauge,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

// StartSagaStepTimer starts a timer for one saga step. The returned func
// records the step with the given outcome.
func StartSagaStepTimer(saga, step string) func(outcome Outcome) {
	startTime := time.Now()
	return func(outcome Outcome) {
		duration := time.Since(startTime).Seconds()
		sagaStepDurationHistogram.WithLabelValues(saga, step, outcome.String()).Observe(duration)
	}
}

func RecordSagaOutcome(saga string, success bool, errorCode string) {
	outcome := Success
	if !success {
		outcome = Error
	}
	sagaOutcomeCounter.WithLabelValues(saga, outcome.String(), errorCode).Inc()
}

// StartClientRequestDurationTimer starts a timer for an outgoing gateway call.
func StartClientRequestDurationTimer(client, method string) func(err error) {
	startTime := time.Now()
	return func(err error) {
		outcome := Success
		if err != nil {
			outcome = Error
		}
		duration := time.Since(startTime).Seconds()
		clientRequestLatency.WithLabelValues(client, method, outcome.String()).Observe(duration)
	}
}

func RecordQueueMessage(queueName string, outcome Outcome) {
	queueMessageCounter.WithLabelValues(queueName, outcome.String()).Inc()
}

func SetMonitoredUsers(count int) {
	monitoredUsersGauge.Set(float64(count))
}
