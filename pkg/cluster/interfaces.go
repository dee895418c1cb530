package cluster

import (
	"context"

	"keyword-engine-go/pkg/intent"
)

// Record is one topic cluster of keywords. Every batch result partitions
// the input keyword set: each keyword appears in exactly one record.
type Record struct {
	Topic    string       `json:"topic"`
	Intent   intent.Label `json:"intent"`
	Keywords []string     `json:"keywords"`
}

// Clusterer groups a keyword batch into topic clusters
type Clusterer interface {
	Cluster(ctx context.Context, keywords []string, intents map[string]intent.Label) ([]Record, error)
}

// MajorityIntent picks the most frequent intent among members.
// Equal frequencies resolve by fixed priority (transactional first),
// never by map iteration order.
func MajorityIntent(members []string, intents map[string]intent.Label) intent.Label {
	counts := make(map[intent.Label]int, 5)
	for _, kw := range members {
		label, ok := intents[kw]
		if !ok {
			label = intent.Unknown
		}
		counts[label]++
	}

	best := intent.Unknown
	bestCount := 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && intent.Priority(label) > intent.Priority(best)) {
			best = label
			bestCount = count
		}
	}
	return best
}
