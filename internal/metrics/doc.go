// Package metrics defines the request metrics port used by the HTTP API.
//
// Adapters (see pkg/adapters/metrics/prometheus) aggregate samples into
// process-wide counters and histograms and render them for scraping.
package metrics
