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

// variantRun pairs a prompt with its output destination for one leg of the
// comparison.
type variantRun struct {
	name       string
	promptPath string
	outputPath string
}

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	inputPath := flag.String("input", "", "Conversations CSV, local path or gs:// URI (required)")
	promptA := flag.String("prompt-a", "", "Variant A instruction prompt (required)")
	promptB := flag.String("prompt-b", "", "Variant B instruction prompt (required)")
	outputA := flag.String("output-a", "", "Variant A output CSV (required)")
	outputB := flag.String("output-b", "", "Variant B output CSV (required)")
	modelName := flag.String("model", "", "Completion model (defaults to CONVO_JUDGE_MODEL or "+config.DefaultModelName+")")
	record := flag.Bool("record", false, "Record both runs and their judgments in BigQuery")
	flag.Parse()

	// Validate required flags
	if *inputPath == "" {
		log.Fatal().Msg("Error: --input is required")
	}
	if *promptA == "" || *promptB == "" {
		log.Fatal().Msg("Error: --prompt-a and --prompt-b are required")
	}
	if *outputA == "" || *outputB == "" {
		log.Fatal().Msg("Error: --output-a and --output-b are required")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Error: invalid configuration")
	}
	if *modelName != "" {
		cfg.ModelName = *modelName
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	svc := judge.NewGeminiCompletionService(cfg)

	var repo *infrabq.BigQueryRunRepository
	if *record {
		repo, err = infrabq.NewBigQueryRunRepository(ctx, cfg.ProjectID, cfg.DatasetID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize BigQuery repository")
		}
		defer repo.Close()
	}

	runs := []variantRun{
		{name: "A", promptPath: *promptA, outputPath: *outputA},
		{name: "B", promptPath: *promptB, outputPath: *outputB},
	}

	for _, run := range runs {
		opts := pipeline.RunOptions{
			InputPath:  *inputPath,
			PromptPath: run.promptPath,
			OutputPath: run.outputPath,
			Variant:    run.name,
			Cfg:        cfg,
			Svc:        svc,
		}
		if repo != nil {
			opts.Repo = repo
		}

		res, err := pipeline.Execute(ctx, opts)
		if err != nil {
			log.Fatal().Err(err).Str("variant", run.name).Msg("Judging run failed")
		}

		fmt.Printf("Variant %s: %d rows, %d true, %d false, %d errored -> %s\n",
			run.name, res.Summary.Total, res.Summary.TrueCount, res.Summary.FalseCount, res.Summary.ErrorCount, run.outputPath)
	}
}
