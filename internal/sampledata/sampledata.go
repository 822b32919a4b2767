package sampledata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const DEFAULT_SAMPLE_PATH = "data/sample_feedback.json"

// Default returns the built-in sample set.
func Default() []models.FeedbackItem {
	return []models.FeedbackItem{
		{
			Feedback: "The product quality is amazing! Really love the design and it works perfectly.",
			Metadata: models.Metadata{"product_id": "P001", "rating": 5},
		},
		{
			Feedback: "Terrible customer service. The product arrived damaged and nobody responded.",
			Metadata: models.Metadata{"product_id": "P002", "rating": 1},
		},
		{
			Feedback: "It's okay, not great but not bad either. The price is reasonable.",
			Metadata: models.Metadata{"product_id": "P001", "rating": 3},
		},
		{
			Feedback: "Fast shipping and great packaging! Very happy with the purchase.",
			Metadata: models.Metadata{"product_id": "P003", "rating": 4},
		},
		{
			Feedback: "Way too expensive for what you get. Poor quality and broke quickly.",
			Metadata: models.Metadata{"product_id": "P002", "rating": 2},
		},
	}
}

// Load reads a JSON array of feedback items. A missing file yields the
// built-in sample set.
func Load(path string) ([]models.FeedbackItem, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("[SampleData] Sample file not found, using built-in samples",
			slog.String("path", path))
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sample file: %w", err)
	}

	var items []models.FeedbackItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse sample file %s: %w", path, err)
	}

	for i := range items {
		if items[i].Metadata == nil {
			items[i].Metadata = models.Metadata{}
		}
	}

	slog.Info("[SampleData] Loaded feedback items",
		slog.String("path", path),
		slog.Int("count", len(items)))
	return items, nil
}

func Save(path string, items []models.FeedbackItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal samples: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create sample directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sample file: %w", err)
	}
	return nil
}
