package notionsync

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/convo-judge/internal/judge"
	"github.com/dvloznov/convo-judge/internal/logger"
	"github.com/jomei/notionapi"
)

// SyncRunSummary pushes a judge run summary to a Notion database.
// If a page with the same Run ID title already exists it is updated in
// place, otherwise a new page is created.
func SyncRunSummary(ctx context.Context, notionClient NotionService, notionDBID string, sum *judge.RunSummary, dryRun bool) error {
	log := logger.FromContext(ctx)

	log.Info().
		Str("run_id", sum.RunID).
		Str("variant", sum.Variant).
		Bool("dry_run", dryRun).
		Msg("Starting run summary sync to Notion")

	existingPageID, err := findRunPage(ctx, notionClient, notionDBID, sum.RunID)
	if err != nil {
		return fmt.Errorf("failed to query Notion pages: %w", err)
	}

	if dryRun {
		if existingPageID != "" {
			log.Info().
				Str("run_id", sum.RunID).
				Str("page_id", existingPageID).
				Msg("[DRY RUN] Would update existing Notion page")
		} else {
			log.Info().
				Str("run_id", sum.RunID).
				Msg("[DRY RUN] Would create new Notion page")
		}
		return nil
	}

	props := RunSummaryToNotionProperties(sum, time.Now().UTC())

	if existingPageID != "" {
		_, err := notionClient.UpdatePage(ctx, existingPageID, props)
		if err != nil {
			return fmt.Errorf("failed to update Notion page: %w", err)
		}
		log.Info().
			Str("run_id", sum.RunID).
			Str("page_id", existingPageID).
			Msg("Updated Notion page")
		return nil
	}

	page, err := notionClient.CreatePage(ctx, notionDBID, props)
	if err != nil {
		return fmt.Errorf("failed to create Notion page: %w", err)
	}
	log.Info().
		Str("run_id", sum.RunID).
		Str("page_id", string(page.ID)).
		Msg("Created Notion page")

	return nil
}

// findRunPage walks the database looking for a page whose Run ID title
// matches runID. Returns the page ID, or empty string if none matches.
func findRunPage(ctx context.Context, notionClient NotionService, databaseID, runID string) (string, error) {
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}

		// Only set StartCursor if we have a cursor value
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notionClient.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return "", fmt.Errorf("findRunPage: %w", err)
		}

		for _, page := range resp.Results {
			if extractRunID(page) == runID {
				return string(page.ID), nil
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return "", nil
}

// extractRunID extracts the run ID from a Notion page's title property.
// Returns empty string if not found.
func extractRunID(page notionapi.Page) string {
	if prop, ok := page.Properties["Run ID"]; ok {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			if len(title.Title) > 0 {
				return title.Title[0].PlainText
			}
		}
	}
	return ""
}
