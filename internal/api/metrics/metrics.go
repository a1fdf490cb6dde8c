// Package metrics defines all custom Prometheus metrics for the tracking
// links service. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry at init time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracklinks"

// ── Resolution metrics ────────────────────────────────────────────────────────

// LinksResolvedTotal counts completed resolutions by winning producer.
// Label:
//   - source: "carrier_table", "shape_guess", "courier_query_link",
//     "last_mile_query_link", "branded_link", "home_page", or "none"
var LinksResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_resolved_total",
		Help:      "Total number of link resolutions, by winning link source.",
	},
	[]string{"source"},
)

// EmailLookupsTotal counts email-based order lookups.
// Label:
//   - outcome: "found" or "empty"
var EmailLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_lookups_total",
		Help:      "Total number of email order lookups, by outcome.",
	},
	[]string{"outcome"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the upstream systems.
// Labels:
//   - service: "shopify" or "track123"
//   - outcome: "ok", "http_error", "transport_error", or "decode_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream API requests, by service and outcome.",
	},
	[]string{"service", "outcome"},
)

// UpstreamRequestDuration measures upstream call latency.
// Label:
//   - service: "shopify" or "track123"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream API requests.",
		Buckets:   prometheus.DefBuckets, // .005 … 10
	},
	[]string{"service"},
)

// ── Transport metrics ─────────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)
