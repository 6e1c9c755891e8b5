package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/snapp-incubator/proksi-cloudbeds/internal/logging"
)

var buckets = []float64{
	0.0005,
	0.001, // 1ms
	0.002,
	0.005,
	0.01, // 10ms
	0.02,
	0.05,
	0.1, // 100 ms
	0.2,
	0.5,
	1.0, // 1s
	2.0,
	5.0,
	10.0, // 10s
	15.0,
	20.0,
	30.0,
}

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	HTTPReqCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "proksi",
		Subsystem: "cloudbeds",
		Name:      "request_count",
		Help:      "Caller request count by route, response status and outcome",
	}, []string{"route", "status", "outcome"})

	HTTPReqDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "proksi",
		Subsystem: "cloudbeds",
		Name:      "request_duration",
		Help:      "Duration of each upstream call that reached Cloudbeds",
		Buckets:   buckets,
	}, []string{"route"})
)

// Observe records one caller request. A zero duration means no upstream call was made.
func Observe(route string, status int, outcome string, d time.Duration) {
	HTTPReqCounter.WithLabelValues(route, strconv.Itoa(status), outcome).Inc()
	if d > 0 {
		HTTPReqDuration.WithLabelValues(route).Observe(d.Seconds())
	}
}

// InitializeHTTP serves the metrics on bind. It blocks until the server fails.
func InitializeHTTP(bind string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := http.Server{
		Addr:    bind,
		Handler: mux,
	}
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.L.Fatal("Error in HTTP server ListenAndServe", zap.Error(err))
	}
}
