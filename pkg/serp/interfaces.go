package serp

import "context"

// Collector fetches per-keyword result-page signals from an external SERP data API
type Collector interface {
	Collect(ctx context.Context, keywords []string) (map[string]*SignalBundle, error)
}
