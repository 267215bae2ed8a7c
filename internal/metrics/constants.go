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

// Ledger metric names
const (
	MetricNameLedgerCredits   = "ledger_credits_total"
	MetricNameLedgerDebits    = "ledger_debits_total"
	MetricNameLedgerTransfers = "ledger_transfers_total"
)

// Game metric names
const (
	MetricNameBattlesCompleted  = "battles_completed_total"
	MetricNameBattlesSettled    = "battles_settled_total"
	MetricNameSettlementReplays = "settlement_replays_total"
	MetricNameItemsBought       = "items_bought_total"
	MetricNameItemsEquipped     = "items_equipped_total"
	MetricNameLevelUps          = "level_ups_total"
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

// Ledger metric help text
const (
	HelpTextLedgerCredits   = "Total number of ledger credits"
	HelpTextLedgerDebits    = "Total number of ledger debits"
	HelpTextLedgerTransfers = "Total number of ledger transfers"
)

// Game metric help text
const (
	HelpTextBattlesCompleted  = "Total number of battles completed"
	HelpTextBattlesSettled    = "Total number of battles settled"
	HelpTextSettlementReplays = "Total number of settlement requests served from stored results"
	HelpTextItemsBought       = "Total number of items bought"
	HelpTextItemsEquipped     = "Total number of items equipped"
	HelpTextLevelUps          = "Total number of character level ups"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCurrency = "currency"
	LabelMode     = "mode"
	LabelOutcome  = "outcome"
	LabelItem     = "item"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// metrics, covering the range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
