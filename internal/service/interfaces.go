package service

import (
	"context"

	"keyword-engine-go/pkg/engine"
	"keyword-engine-go/pkg/serp"
)

// AnalysisService runs one keyword batch through the analysis engine,
// optionally collecting missing signals first
type AnalysisService interface {
	Analyze(ctx context.Context, keywords []string, signals map[string]*serp.SignalBundle) (*engine.Result, error)
}
