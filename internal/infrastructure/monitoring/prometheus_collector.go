package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	usersTotal      prometheus.Counter
	channelsTotal   prometheus.Counter
	joinsTotal      prometheus.Counter
	conflictsTotal  prometheus.Counter
}

// NewPrometheusCollector registers the service metrics with reg. Tests pass
// a fresh registry to avoid duplicate registration.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	return &PrometheusCollector{
		requestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "channelhub_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "channelhub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method", "path"}),

		usersTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "channelhub_users_created_total",
			Help: "Total number of users created",
		}),

		channelsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "channelhub_channels_created_total",
			Help: "Total number of channels created",
		}),

		joinsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "channelhub_memberships_created_total",
			Help: "Total number of channel memberships created",
		}),

		conflictsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "channelhub_conflicts_total",
			Help: "Total number of requests rejected with a conflict",
		}),
	}
}

func (p *PrometheusCollector) RecordRequest(method, path string, status int, duration time.Duration) {
	p.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	if status == 409 {
		p.conflictsTotal.Inc()
	}
}

func (p *PrometheusCollector) RecordUserCreated()       { p.usersTotal.Inc() }
func (p *PrometheusCollector) RecordChannelCreated()    { p.channelsTotal.Inc() }
func (p *PrometheusCollector) RecordMembershipCreated() { p.joinsTotal.Inc() }
