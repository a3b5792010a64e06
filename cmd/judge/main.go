package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/convo-judge/internal/config"
	infrabq "github.com/dvloznov/convo-judge/internal/infra/bigquery"
	"github.com/dvloznov/convo-judge/internal/judge"
	"github.com/dvloznov/convo-judge/internal/logger"
	"github.com/dvloznov/convo-judge/internal/pipeline"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	inputPath := flag.String("input", "", "Conversations CSV, local path or gs:// URI (required)")
	promptPath := flag.String("prompt", "", "Instruction prompt text file, local path or gs:// URI (required)")
	outputPath := flag.String("output", "", "Enriched output CSV, local path or gs:// URI (required)")
	variant := flag.String("variant", "A", "Prompt variant name for bookkeeping")
	modelName := flag.String("model", "", "Completion model (defaults to CONVO_JUDGE_MODEL or "+config.DefaultModelName+")")
	temperature := flag.Float64("temperature", -1, "Sampling temperature (defaults to CONVO_JUDGE_TEMPERATURE or 0)")
	record := flag.Bool("record", false, "Record the run and its judgments in BigQuery")
	projectID := flag.String("project", "", "GCP project for run recording (defaults to CONVO_JUDGE_PROJECT)")
	datasetID := flag.String("dataset", "", "BigQuery dataset for run recording (defaults to CONVO_JUDGE_DATASET)")
	listRuns := flag.Int("list-runs", 0, "List the N most recent recorded runs and exit")
	flag.Parse()

	// Validate required flags
	if *listRuns == 0 {
		if *inputPath == "" {
			log.Fatal().Msg("Error: --input is required")
		}
		if *promptPath == "" {
			log.Fatal().Msg("Error: --prompt is required")
		}
		if *outputPath == "" {
			log.Fatal().Msg("Error: --output is required")
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Error: invalid configuration")
	}
	if *modelName != "" {
		cfg.ModelName = *modelName
	}
	if *temperature >= 0 {
		cfg.Temperature = *temperature
	}
	if *projectID != "" {
		cfg.ProjectID = *projectID
	}
	if *datasetID != "" {
		cfg.DatasetID = *datasetID
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	if *listRuns > 0 {
		repo, err := infrabq.NewBigQueryRunRepository(ctx, cfg.ProjectID, cfg.DatasetID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize BigQuery repository")
		}
		defer repo.Close()

		runs, err := repo.ListRecentEvalRuns(ctx, *listRuns)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list runs")
		}
		for _, run := range runs {
			fmt.Printf("%s  variant=%s  model=%s  status=%s  rows=%d  errored=%d\n",
				run.RunID, run.PromptVariant, run.ModelName, run.Status,
				run.RowsTotal.Int64, run.RowsErrored.Int64)
		}
		return
	}

	opts := pipeline.RunOptions{
		InputPath:  *inputPath,
		PromptPath: *promptPath,
		OutputPath: *outputPath,
		Variant:    *variant,
		Cfg:        cfg,
		Svc:        judge.NewGeminiCompletionService(cfg),
	}

	if *record {
		repo, err := infrabq.NewBigQueryRunRepository(ctx, cfg.ProjectID, cfg.DatasetID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize BigQuery repository")
		}
		defer repo.Close()
		opts.Repo = repo
	}

	res, err := pipeline.Execute(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Judging run failed")
	}

	fmt.Printf("Judged %d rows (%d errored) -> %s\n", res.Summary.Total, res.Summary.ErrorCount, *outputPath)
}
