package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const (
	REPORT_FILENAME_LAYOUT = "20060102_150405"
	BATCH_ID_PREFIX        = "batch_"
	REPORT_FILE_PREFIX     = "feedback_analysis_report_"
)

// Publisher ships a finished batch result to an external sink.
type Publisher interface {
	Publish(ctx context.Context, result models.BatchResult) error
}

func BatchID(t time.Time) string {
	return BATCH_ID_PREFIX + t.Format(REPORT_FILENAME_LAYOUT)
}

func DefaultReportFilename(t time.Time) string {
	return REPORT_FILE_PREFIX + t.Format(REPORT_FILENAME_LAYOUT) + ".json"
}

// SaveJSON writes result as indented JSON. An empty path uses the default
// timestamped filename in the working directory. The written path is
// returned.
func SaveJSON(path string, result models.BatchResult) (string, error) {
	if path == "" {
		path = DefaultReportFilename(time.Now())
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info("[Report] Report saved",
		slog.String("path", path),
		slog.String("batch_id", result.BatchID))
	return path, nil
}
