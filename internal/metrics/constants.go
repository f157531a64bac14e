package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Engine metric names
const (
	MetricNameActionsResolved       = "actions_resolved_total"
	MetricNameActionResolveDuration = "action_resolve_duration_seconds"
	MetricNameActionsRejected       = "actions_rejected_total"
	MetricNameToolBreaks            = "tool_breaks_total"
	MetricNameDeathPenalties        = "death_penalties_total"
	MetricNameCoinsAwarded          = "coins_awarded_total"
	MetricNameCoinsLost             = "coins_lost_total"
	MetricNameItemsAwarded          = "items_awarded_total"
	MetricNameTelemetryDropped      = "telemetry_events_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Engine metric help text
const (
	HelpTextActionsResolved       = "Total number of committed actions by area type and outcome"
	HelpTextActionResolveDuration = "Time spent resolving an action, including the transaction"
	HelpTextActionsRejected       = "Total number of actions rejected before commit, by error tag"
	HelpTextToolBreaks            = "Total number of tool instances broken"
	HelpTextDeathPenalties        = "Total number of death penalties applied"
	HelpTextCoinsAwarded          = "Total coins awarded by actions"
	HelpTextCoinsLost             = "Total coins lost to death penalties"
	HelpTextItemsAwarded          = "Total item units awarded by actions, by item key"
	HelpTextTelemetryDropped      = "Tool break events not persisted because the queue was full"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelAreaType   = "area_type"
	LabelOutcome    = "outcome"
	LabelTool       = "tool"
	LabelAutoDefeat = "auto_defeat"
	LabelErrorTag   = "error_tag"
	LabelItem       = "item"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
