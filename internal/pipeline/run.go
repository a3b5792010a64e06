// Package pipeline orchestrates a complete judging run: load the input
// conversations, judge every row against an instruction prompt, write the
// enriched output, and optionally record the run in BigQuery.
package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/convo-judge/internal/config"
	"github.com/dvloznov/convo-judge/internal/dataset"
	"github.com/dvloznov/convo-judge/internal/gcsio"
	"github.com/dvloznov/convo-judge/internal/infra/bigquery"
	"github.com/dvloznov/convo-judge/internal/judge"
	"github.com/dvloznov/convo-judge/internal/logger"
)

// RunOptions carries everything Execute needs for one judging run.
type RunOptions struct {
	// InputPath is the conversations CSV, local path or gs:// URI.
	InputPath string

	// PromptPath is the instruction prompt text file, local path or gs:// URI.
	PromptPath string

	// OutputPath is where the enriched CSV is written, local path or gs:// URI.
	OutputPath string

	// Variant names the prompt variant for bookkeeping (e.g. "A" or "B").
	Variant string

	Cfg *config.Config
	Svc judge.CompletionService

	// Repo records the run in BigQuery when non-nil.
	Repo bigquery.RunRepository
}

// RunResult reports what a completed run produced.
type RunResult struct {
	// RunID is the BigQuery run ID, empty when run recording is disabled.
	RunID   string
	Summary judge.RunSummary
}

// Execute performs one judging run end to end. Individual row failures are
// absorbed into ERROR-labelled output records; Execute itself fails only on
// I/O or bookkeeping problems that prevent the run from producing output.
func Execute(ctx context.Context, opts RunOptions) (*RunResult, error) {
	log := logger.FromContext(ctx)

	// 1. Load and parse the input conversations.
	inputBytes, err := gcsio.ReadSource(ctx, opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("Execute: read input: %w", err)
	}

	rows, err := dataset.ParseConversations(inputBytes)
	if err != nil {
		return nil, fmt.Errorf("Execute: parse input: %w", err)
	}

	// 2. Load the instruction prompt.
	promptBytes, err := gcsio.ReadSource(ctx, opts.PromptPath)
	if err != nil {
		return nil, fmt.Errorf("Execute: read prompt: %w", err)
	}
	instruction := string(promptBytes)

	log.Info().
		Str("input", opts.InputPath).
		Str("prompt", opts.PromptPath).
		Str("variant", opts.Variant).
		Int("rows", len(rows)).
		Msg("Starting judging run")

	// 3. Start run bookkeeping when a repository is configured.
	var runID string
	if opts.Repo != nil {
		runID, err = opts.Repo.StartEvalRun(ctx, opts.Variant, opts.Cfg.ModelName, opts.Cfg.Temperature, opts.InputPath, opts.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("Execute: start eval run: %w", err)
		}
	}

	// 4. Judge every row sequentially.
	records := judge.RunBatch(ctx, opts.Svc, instruction, rows)

	// 5. Render and write the enriched output.
	outputBytes, err := dataset.RenderRecords(records)
	if err != nil {
		if opts.Repo != nil {
			opts.Repo.MarkEvalRunFailed(ctx, runID, err)
		}
		return nil, fmt.Errorf("Execute: render output: %w", err)
	}

	if err := gcsio.WriteDest(ctx, opts.OutputPath, outputBytes); err != nil {
		if opts.Repo != nil {
			opts.Repo.MarkEvalRunFailed(ctx, runID, err)
		}
		return nil, fmt.Errorf("Execute: write output: %w", err)
	}

	summary := judge.Summarize(records)
	summary.RunID = runID
	summary.Variant = opts.Variant
	summary.Model = opts.Cfg.ModelName

	// 6. Persist judgments and close out the run record.
	if opts.Repo != nil {
		if err := opts.Repo.InsertJudgments(ctx, runID, records); err != nil {
			opts.Repo.MarkEvalRunFailed(ctx, runID, err)
			return nil, fmt.Errorf("Execute: insert judgments: %w", err)
		}

		if err := opts.Repo.MarkEvalRunSucceeded(ctx, runID, summary.Total, summary.ErrorCount); err != nil {
			return nil, fmt.Errorf("Execute: mark run succeeded: %w", err)
		}
	}

	log.Info().
		Str("run_id", runID).
		Str("output", opts.OutputPath).
		Int("rows", summary.Total).
		Int("errors", summary.ErrorCount).
		Msg("Judging run completed")

	return &RunResult{RunID: runID, Summary: summary}, nil
}
