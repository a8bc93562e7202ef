package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grant_updates"

var (
	RequestsHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sdk_requests",
			Help:      "Time taken to process requests to external services",
			Buckets:   []float64{.005, .01, .025, .05, .075, .1, .15, .2, .25, .5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"client", "method", "error"},
	)

	APIHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_requests",
			Help:      "Time taken to handle API requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"route", "code"},
	)

	SubmissionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Number of submitted updates by resulting status",
		},
		[]string{"status"},
	)

	SurveyDecodeCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "survey_decode_total",
			Help:      "Number of decoded surveys",
		},
		[]string{"error"},
	)
)

func CollectRequestsMetric(client, method string, err error, start time.Time) {
	RequestsHistogram.
		WithLabelValues(client, method, errLabelValue(err)).
		Observe(time.Since(start).Seconds())
}

func CollectAPIMetric(route string, code int, start time.Time) {
	APIHistogram.
		WithLabelValues(route, statusLabelValue(code)).
		Observe(time.Since(start).Seconds())
}

func CollectUpdateSubmission(status string) {
	SubmissionsCounter.WithLabelValues(status).Inc()
}

func CollectSurveyDecode(err error) {
	SurveyDecodeCounter.WithLabelValues(errLabelValue(err)).Inc()
}

// errLabelValue returns string representation of error label value
func errLabelValue(err error) string {
	if err != nil {
		return "true"
	}
	return "false"
}

func statusLabelValue(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
