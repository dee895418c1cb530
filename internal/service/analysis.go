package service

import (
	"context"
	"fmt"

	"keyword-engine-go/pkg/engine"
	"keyword-engine-go/pkg/logger"
	"keyword-engine-go/pkg/serp"
)

type analysisService struct {
	engine    *engine.Engine
	collector serp.Collector
	log       *logger.Logger
}

// NewAnalysisService wires the engine with an optional SERP collector.
// A nil collector means callers must supply their own signal bundles.
func NewAnalysisService(eng *engine.Engine, collector serp.Collector) AnalysisService {
	return &analysisService{
		engine:    eng,
		collector: collector,
		log:       logger.GetLogger().WithField("component", "analysis_service"),
	}
}

func (s *analysisService) Analyze(ctx context.Context, keywords []string, signals map[string]*serp.SignalBundle) (*engine.Result, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}

	// Collect signals only for keywords the caller did not supply.
	// Collection failures are logged and degrade to engine defaults.
	if s.collector != nil {
		missing := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			if _, ok := signals[kw]; !ok {
				missing = append(missing, kw)
			}
		}
		if len(missing) > 0 {
			collected, err := s.collector.Collect(ctx, missing)
			if err != nil {
				s.log.WithError(err).WithField("keywords", len(missing)).Warn("Signal collection failed, analyzing without signals")
			} else {
				if signals == nil {
					signals = make(map[string]*serp.SignalBundle, len(collected))
				}
				for kw, bundle := range collected {
					signals[kw] = bundle
				}
			}
		}
	}

	return s.engine.Process(ctx, keywords, signals), nil
}
