package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"keyword-engine-go/pkg/engine"
	"keyword-engine-go/pkg/logger"
)

// JSONExporter writes analysis results to readable JSON files
type JSONExporter struct {
	log *logger.Logger
}

// NewJSONExporter creates a new result exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{
		log: logger.GetLogger().WithField("component", "json_exporter"),
	}
}

type summary struct {
	GeneratedAt     string         `json:"generated_at"`
	Keywords        int            `json:"keywords"`
	Clusters        int            `json:"clusters"`
	Questions       int            `json:"questions"`
	IntentBreakdown map[string]int `json:"intent_breakdown"`
}

// Export writes the full result and a summary report into outputDir
func (e *JSONExporter) Export(result *engine.Result, outputDir string) error {
	if result == nil {
		return fmt.Errorf("no result to export")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := e.writeJSON(filepath.Join(outputDir, "analysis.json"), result); err != nil {
		return fmt.Errorf("failed to export analysis: %w", err)
	}

	intents := make(map[string]int)
	for _, label := range result.IntentClassification {
		intents[string(label)]++
	}
	report := summary{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Keywords:        len(result.IntentClassification),
		Clusters:        len(result.Clusters),
		Questions:       len(result.QuestionKeywords),
		IntentBreakdown: intents,
	}
	if err := e.writeJSON(filepath.Join(outputDir, "summary.json"), report); err != nil {
		return fmt.Errorf("failed to export summary: %w", err)
	}

	e.log.WithField("output_dir", outputDir).Info("Analysis results exported")
	return nil
}

func (e *JSONExporter) writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
