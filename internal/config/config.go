// Package config holds the run configuration for the judge pipeline.
// A Config is built once at startup and passed by reference into the
// completion invoker and the persistence layers; there are no package-level
// mutable settings.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default values for judging runs. These can be overridden via CLI flags or
// the environment variables read by FromEnv.
const (
	// DefaultModelName is the default Gemini model used for judging.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultTemperature is the sampling temperature sent with every call.
	DefaultTemperature = 0.0

	// DefaultDatasetID is the default BigQuery dataset for run bookkeeping.
	DefaultDatasetID = "convo_judge"
)

// Config carries all settings for one judging run.
type Config struct {
	// ModelName is the completion model identifier.
	ModelName string

	// Temperature is the sampling temperature for completion calls.
	Temperature float64

	// ProjectID and DatasetID locate the BigQuery dataset used when run
	// recording is enabled.
	ProjectID string
	DatasetID string

	// NotionToken and NotionDatabaseID configure the optional run-summary
	// sync to Notion.
	NotionToken      string
	NotionDatabaseID string
}

// FromEnv builds a Config from defaults plus environment overrides.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ModelName:        DefaultModelName,
		Temperature:      DefaultTemperature,
		ProjectID:        os.Getenv("CONVO_JUDGE_PROJECT"),
		DatasetID:        os.Getenv("CONVO_JUDGE_DATASET"),
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DB_ID"),
	}

	if m := os.Getenv("CONVO_JUDGE_MODEL"); m != "" {
		cfg.ModelName = m
	}
	if t := os.Getenv("CONVO_JUDGE_TEMPERATURE"); t != "" {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, fmt.Errorf("FromEnv: invalid CONVO_JUDGE_TEMPERATURE %q: %w", t, err)
		}
		cfg.Temperature = v
	}
	if cfg.DatasetID == "" {
		cfg.DatasetID = DefaultDatasetID
	}

	return cfg, nil
}
