package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
)

// newJudgmentID generates the primary key for one judgment row.
func newJudgmentID() string {
	return uuid.NewString()
}

// InsertJudgmentsWithClient inserts a batch of JudgmentRow into
// <dataset>.judgments using the streaming inserter. Judgments are append-only
// and never updated, so the streaming buffer is not a concern here.
func InsertJudgmentsWithClient(ctx context.Context, client *bigquery.Client, datasetID string, rows []*JudgmentRow) error {
	if len(rows) == 0 {
		return nil
	}

	inserter := client.Dataset(datasetID).Table(judgmentsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertJudgments: inserting %d rows: %w", len(rows), err)
	}

	return nil
}
