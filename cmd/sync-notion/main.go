package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/convo-judge/internal/config"
	"github.com/dvloznov/convo-judge/internal/dataset"
	"github.com/dvloznov/convo-judge/internal/gcsio"
	"github.com/dvloznov/convo-judge/internal/judge"
	"github.com/dvloznov/convo-judge/internal/logger"
	"github.com/dvloznov/convo-judge/internal/notionsync"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	resultsPath := flag.String("results", "", "Judged results CSV, local path or gs:// URI (required)")
	runID := flag.String("run-id", "", "Run ID for the Notion page title (required)")
	variant := flag.String("variant", "", "Prompt variant name")
	notionToken := flag.String("notion-token", "", "Notion API token (defaults to NOTION_TOKEN)")
	notionDBID := flag.String("notion-db-id", "", "Notion database ID (defaults to NOTION_DB_ID)")
	dryRun := flag.Bool("dry-run", false, "Dry run mode - preview changes without syncing")
	flag.Parse()

	// Validate required flags
	if *resultsPath == "" {
		log.Fatal().Msg("Error: --results is required")
	}
	if *runID == "" {
		log.Fatal().Msg("Error: --run-id is required")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Error: invalid configuration")
	}
	if *notionToken != "" {
		cfg.NotionToken = *notionToken
	}
	if *notionDBID != "" {
		cfg.NotionDatabaseID = *notionDBID
	}
	if cfg.NotionToken == "" {
		log.Fatal().Msg("Error: --notion-token or NOTION_TOKEN is required")
	}
	if cfg.NotionDatabaseID == "" {
		log.Fatal().Msg("Error: --notion-db-id or NOTION_DB_ID is required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	content, err := gcsio.ReadSource(ctx, *resultsPath)
	if err != nil {
		log.Fatal().Err(err).Str("results", *resultsPath).Msg("Failed to read results")
	}

	records, err := dataset.ParseRecords(content)
	if err != nil {
		log.Fatal().Err(err).Str("results", *resultsPath).Msg("Failed to parse results")
	}

	summary := judge.Summarize(records)
	summary.RunID = *runID
	summary.Variant = *variant
	summary.Model = cfg.ModelName

	notionClient := notionsync.NewNotionClient(cfg.NotionToken)

	if err := notionsync.SyncRunSummary(ctx, notionClient, cfg.NotionDatabaseID, &summary, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	fmt.Println("Sync completed successfully.")
}
