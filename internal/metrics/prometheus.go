package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "strato"

// Prometheus 基于 Prometheus 的指标实现
type Prometheus struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	filterResults   prometheus.Histogram
	recommendations prometheus.Histogram
	chatTurns       *prometheus.CounterVec
	submissions     *prometheus.CounterVec
}

// NewPrometheus 创建指标，registerer 为 nil 时使用默认注册表
func NewPrometheus(registerer prometheus.Registerer) *Prometheus {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Prometheus{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		filterResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_filter_results",
				Help:      "Number of tools returned by catalog filtering",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
		),
		recommendations: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommendations_returned",
				Help:      "Number of tools returned per recommendation",
				Buckets:   []float64{0, 1, 2, 3},
			},
		),
		chatTurns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_turns_total",
				Help:      "Total number of chat turns",
			},
			[]string{"outcome"},
		),
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total number of tool submissions",
			},
			[]string{"outcome"},
		),
	}
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (p *Prometheus) ObserveFilterResults(count int) {
	p.filterResults.Observe(float64(count))
}

func (p *Prometheus) ObserveRecommendations(count int) {
	p.recommendations.Observe(float64(count))
}

func (p *Prometheus) IncChatTurn(outcome string) {
	p.chatTurns.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) IncSubmission(outcome string) {
	p.submissions.WithLabelValues(outcome).Inc()
}

var _ Recorder = (*Prometheus)(nil)
