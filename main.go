package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"keyword-engine-go/pkg/embedding"
	"keyword-engine-go/pkg/engine"
	"keyword-engine-go/pkg/export"
	"keyword-engine-go/pkg/logger"
	"keyword-engine-go/pkg/serp"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// batchInput is the JSON shape of an analysis input file
type batchInput struct {
	Keywords []string                      `json:"keywords"`
	Signals  map[string]*serp.SignalBundle `json:"signals,omitempty"`
}

func main() {
	// Environment variable defaults (CI friendly)
	defaultInput := getEnvOrDefault("ANALYSIS_INPUT", "")
	defaultOutput := getEnvOrDefault("ANALYSIS_OUTPUT", "output")
	defaultEmbeddingURL := getEnvOrDefault("EMBEDDING_API_URL", "")
	defaultEmbeddingKey := getEnvOrDefault("EMBEDDING_API_KEY", "")
	defaultEmbeddingModel := getEnvOrDefault("EMBEDDING_MODEL", "text-embedding-3-small")
	defaultSERPURL := getEnvOrDefault("SERP_API_URL", "")
	defaultSERPKey := getEnvOrDefault("SERP_API_KEY", "")
	defaultDebug := getEnvBoolOrDefault("DEBUG", false)

	var (
		inputPath      = flag.String("input", defaultInput, "Input JSON file with keywords and optional signals (env: ANALYSIS_INPUT)")
		outputDir      = flag.String("output", defaultOutput, "Output directory for result files (env: ANALYSIS_OUTPUT)")
		embeddingURL   = flag.String("embedding-url", defaultEmbeddingURL, "Embedding API endpoint; empty activates lexical clustering (env: EMBEDDING_API_URL)")
		embeddingKey   = flag.String("embedding-key", defaultEmbeddingKey, "Embedding API key (env: EMBEDDING_API_KEY)")
		embeddingModel = flag.String("embedding-model", defaultEmbeddingModel, "Embedding model name (env: EMBEDDING_MODEL)")
		serpURL        = flag.String("serp-api-url", defaultSERPURL, "SERP data API endpoint for signal collection (env: SERP_API_URL)")
		serpKey        = flag.String("serp-api-key", defaultSERPKey, "SERP data API key (env: SERP_API_KEY)")
		debug          = flag.Bool("debug", defaultDebug, "Enable debug logging (env: DEBUG)")
		help           = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help || *inputPath == "" {
		fmt.Println("keyword-engine - keyword intent, clustering and opportunity analysis")
		fmt.Println()
		flag.PrintDefaults()
		if *inputPath == "" && !*help {
			os.Exit(1)
		}
		return
	}

	logLevel := "info"
	if *debug {
		logLevel = "debug"
	}
	appLogger := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	logger.SetLogger(appLogger)

	if err := runAnalysis(*inputPath, *outputDir, *embeddingURL, *embeddingKey, *embeddingModel, *serpURL, *serpKey); err != nil {
		appLogger.WithError(err).Fatal("Analysis run failed")
	}
}

func runAnalysis(inputPath, outputDir, embeddingURL, embeddingKey, embeddingModel, serpURL, serpKey string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	var input batchInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	if len(input.Keywords) == 0 {
		return fmt.Errorf("input file contains no keywords")
	}

	ctx := context.Background()
	progress := logger.NewProgressReporter(3, "analysis")

	// Stage: signal collection (optional)
	signals := input.Signals
	if serpURL != "" {
		collector := serp.NewHTTPCollector(serpURL, serpKey)
		collected, err := collector.Collect(ctx, input.Keywords)
		if err != nil {
			logger.WithError(err).Warn("Signal collection failed, analyzing with input signals only")
		} else {
			if signals == nil {
				signals = make(map[string]*serp.SignalBundle, len(collected))
			}
			for kw, bundle := range collected {
				if _, ok := signals[kw]; !ok {
					signals[kw] = bundle
				}
			}
		}
	}
	progress.Update(1)

	// Stage: engine run
	var provider embedding.Provider
	if embeddingURL != "" {
		provider = embedding.NewHTTPProvider(embeddingURL, embeddingKey, embeddingModel, 30*time.Second)
	}
	result := engine.New(provider).Process(ctx, input.Keywords, signals)
	progress.Update(1)

	// Stage: export
	if err := export.NewJSONExporter().Export(result, outputDir); err != nil {
		return err
	}
	progress.Complete()

	logger.WithField("output_dir", outputDir).Info("Analysis complete")
	return nil
}
