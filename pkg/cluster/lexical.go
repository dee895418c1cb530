package cluster

import (
	"context"
	"regexp"
	"sort"

	"keyword-engine-go/pkg/intent"
	"keyword-engine-go/pkg/logger"
)

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Common English function words plus SEO-generic terms that carry no
// topical signal in keyword text
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "are": true, "was": true, "were": true,
	"been": true, "can": true, "does": true, "should": true, "will": true,
	"you": true, "your": true, "not": true, "all": true, "out": true,
	"get": true, "has": true, "have": true, "how": true, "what": true,
	"why": true, "when": true, "where": true, "who": true, "which": true,
	"best": true, "top": true, "guide": true, "review": true, "reviews": true,
	"price": true, "buy": true, "near": true, "list": true, "tips": true,
	"free": true, "online": true, "cheap": true, "new": true, "vs": true,
}

// Fixed iteration order for intent groups keeps fallback output stable
var intentGroupOrder = []intent.Label{
	intent.Informational,
	intent.Navigational,
	intent.Commercial,
	intent.Transactional,
	intent.Unknown,
}

// LexicalClusterer groups keywords by shared significant tokens. It is the
// fallback strategy when no embedding provider is available or the
// embedding path fails.
type LexicalClusterer struct {
	log *logger.Logger
}

// NewLexicalClusterer creates the token co-occurrence fallback clusterer
func NewLexicalClusterer() *LexicalClusterer {
	return &LexicalClusterer{
		log: logger.GetLogger().WithField("component", "lexical_clusterer"),
	}
}

// Cluster partitions keywords by intent first, then greedily groups each
// intent partition by its most widely shared tokens
func (lc *LexicalClusterer) Cluster(ctx context.Context, keywords []string, intents map[string]intent.Label) ([]Record, error) {
	if len(keywords) == 0 {
		return []Record{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byIntent := make(map[intent.Label][]string, len(intentGroupOrder))
	for _, kw := range keywords {
		label, ok := intents[kw]
		if !ok {
			label = intent.Unknown
		}
		byIntent[label] = append(byIntent[label], kw)
	}

	records := make([]Record, 0, len(keywords))
	for _, label := range intentGroupOrder {
		group := byIntent[label]
		if len(group) == 0 {
			continue
		}
		records = append(records, lc.clusterGroup(group, label)...)
	}

	lc.log.WithFields(map[string]interface{}{
		"keywords": len(keywords),
		"clusters": len(records),
	}).Debug("Lexical clustering completed")
	return records, nil
}

func (lc *LexicalClusterer) clusterGroup(keywords []string, label intent.Label) []Record {
	// Token -> keywords containing it, in input order
	membership := make(map[string][]string)
	for _, kw := range keywords {
		seen := make(map[string]bool)
		for _, token := range Tokenize(kw) {
			if seen[token] {
				continue
			}
			seen[token] = true
			membership[token] = append(membership[token], kw)
		}
	}

	// Keep tokens shared by at least two keywords, most widely shared
	// first; alphabetical order breaks equal sizes
	shared := make([]string, 0, len(membership))
	for token, members := range membership {
		if len(members) >= 2 {
			shared = append(shared, token)
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if len(membership[shared[i]]) != len(membership[shared[j]]) {
			return len(membership[shared[i]]) > len(membership[shared[j]])
		}
		return shared[i] < shared[j]
	})

	claimed := make(map[string]bool, len(keywords))
	records := make([]Record, 0, len(shared))
	for _, token := range shared {
		var members []string
		for _, kw := range membership[token] {
			if !claimed[kw] {
				members = append(members, kw)
			}
		}
		if len(members) == 0 {
			continue
		}
		for _, kw := range members {
			claimed[kw] = true
		}
		records = append(records, Record{Topic: token, Intent: label, Keywords: members})
	}

	// Every unclaimed keyword becomes its own singleton cluster
	for _, kw := range keywords {
		if claimed[kw] {
			continue
		}
		topic := dominantToken([]string{kw})
		if topic == "" {
			topic = kw
		}
		records = append(records, Record{Topic: topic, Intent: label, Keywords: []string{kw}})
	}

	return records
}

// Tokenize splits a keyword into significant lower-cased tokens, dropping
// stop words and tokens of length <= 2
func Tokenize(keyword string) []string {
	raw := wordPattern.FindAllString(intent.Normalize(keyword), -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if len(token) <= 2 || stopWords[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// dominantToken picks the most representative significant token across a
// set of keywords: highest occurrence count, then longest, then first seen.
// Returns "" when no token survives filtering.
func dominantToken(keywords []string) string {
	counts := make(map[string]int)
	var order []string
	for _, kw := range keywords {
		for _, token := range Tokenize(kw) {
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	best := ""
	for _, token := range order {
		if best == "" {
			best = token
			continue
		}
		if counts[token] > counts[best] || (counts[token] == counts[best] && len(token) > len(best)) {
			best = token
		}
	}
	return best
}
