package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	ContainersOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContainersOpened,
			Help: HelpTextContainersOpened,
		},
		[]string{LabelItem},
	)

	ItemSetsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemSetsClaimed,
			Help: HelpTextItemSetsClaimed,
		},
		[]string{LabelSet},
	)

	ItemsCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsCredited,
			Help: HelpTextItemsCredited,
		},
		[]string{LabelItem},
	)

	CatalogSyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogSyncs,
			Help: HelpTextCatalogSyncs,
		},
		[]string{LabelKind},
	)
)
