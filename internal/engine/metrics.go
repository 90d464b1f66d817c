package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests      atomic.Int64
	ChannelRequests     atomic.Int64
	PageFetches         atomic.Int64
	PageFetchErrors     atomic.Int64
	DDGRequests         atomic.Int64
	SocialBladeRequests atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"search_requests":       metrics.SearchRequests.Load(),
		"channel_requests":      metrics.ChannelRequests.Load(),
		"page_fetches":          metrics.PageFetches.Load(),
		"page_fetch_errors":     metrics.PageFetchErrors.Load(),
		"ddg_requests":          metrics.DDGRequests.Load(),
		"socialblade_requests":  metrics.SocialBladeRequests.Load(),
	}
}

// FormatMetrics returns counters as a simple text block for the run summary.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"search_requests", "channel_requests",
		"page_fetches", "page_fetch_errors",
		"ddg_requests", "socialblade_requests",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrSearchRequest()  { metrics.SearchRequests.Add(1) }
func IncrChannelRequest() { metrics.ChannelRequests.Add(1) }
func IncrPageFetch()      { metrics.PageFetches.Add(1) }
func IncrPageFetchError() { metrics.PageFetchErrors.Add(1) }
func IncrDDGRequest()     { metrics.DDGRequests.Add(1) }
func IncrSocialBlade()    { metrics.SocialBladeRequests.Add(1) }
