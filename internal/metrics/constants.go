package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameContainersOpened = "containers_opened_total"
	MetricNameItemSetsClaimed  = "item_sets_claimed_total"
	MetricNameItemsCredited    = "items_credited_total"
	MetricNameCatalogSyncs     = "catalog_syncs_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextContainersOpened = "Total number of loot containers opened"
	HelpTextItemSetsClaimed  = "Total number of item sets claimed"
	HelpTextItemsCredited    = "Total number of item units credited to collections"
	HelpTextCatalogSyncs     = "Total number of catalog reconciliations applied"
)

// Metric labels
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelItem   = "item"
	LabelSet    = "item_set"
	LabelKind   = "kind"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
