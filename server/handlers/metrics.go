package handlers

import (
	"net/http"
	"time"

	mdmetrics "github.com/distribution/mdhash/metrics"
	"github.com/docker/go-metrics"
	"github.com/paulbellamy/ratecounter"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// requestCounter counts requests over a sliding minute.
	requestCounter = ratecounter.NewRateCounter(time.Minute)

	requests = mdmetrics.HTTPNamespace.NewLabeledCounter("requests", "The number of requests served", "route", "code")

	requestDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  mdmetrics.NamespacePrefix,
		Subsystem:  "http",
		Name:       "request_duration_seconds",
		Help:       "The time taken to serve a request",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"route", "code"})

	requestsPerSecond = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: mdmetrics.NamespacePrefix,
		Subsystem: "http",
		Name:      "requests_per_second",
		Help:      "Requests per second averaged over the last minute",
	}, func() float64 {
		return float64(requestCounter.Rate()) / 60
	})
)

func init() {
	metrics.Register(mdmetrics.HTTPNamespace)
	prometheus.MustRegister(requestDuration, requestsPerSecond)
}

// observeDuration observes the duration between t and the call to the
// function on the given metric.
func observeDuration(t time.Time, metric *prometheus.SummaryVec, labels ...string) {
	metric.WithLabelValues(labels...).Observe(time.Since(t).Seconds())
}

func metricsHandler() http.Handler {
	return metrics.Handler()
}
