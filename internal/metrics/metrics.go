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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Engine Metrics
var (
	ActionsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsResolved,
			Help: HelpTextActionsResolved,
		},
		[]string{LabelAreaType, LabelOutcome},
	)

	ActionResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameActionResolveDuration,
			Help:    HelpTextActionResolveDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	ActionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsRejected,
			Help: HelpTextActionsRejected,
		},
		[]string{LabelErrorTag},
	)

	ToolBreaks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameToolBreaks,
			Help: HelpTextToolBreaks,
		},
		[]string{LabelTool},
	)

	DeathPenalties = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDeathPenalties,
			Help: HelpTextDeathPenalties,
		},
		[]string{LabelAutoDefeat},
	)

	CoinsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsAwarded,
			Help: HelpTextCoinsAwarded,
		},
	)

	CoinsLost = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsLost,
			Help: HelpTextCoinsLost,
		},
	)

	ItemsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsAwarded,
			Help: HelpTextItemsAwarded,
		},
		[]string{LabelItem},
	)

	TelemetryDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTelemetryDropped,
			Help: HelpTextTelemetryDropped,
		},
	)
)
