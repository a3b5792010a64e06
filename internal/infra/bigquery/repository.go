package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/convo-judge/internal/judge"
)

// RunRepository provides an interface for eval-run bookkeeping operations.
// This interface enables mocking and testing of the recording layer.
type RunRepository interface {
	// StartEvalRun inserts a new eval run with status=RUNNING and returns the run_id.
	StartEvalRun(ctx context.Context, promptVariant, modelName string, temperature float64, inputURI, outputURI string) (string, error)

	// MarkEvalRunFailed sets status=FAILED, finished_ts and error_message for a run.
	MarkEvalRunFailed(ctx context.Context, runID string, runErr error)

	// MarkEvalRunSucceeded sets status=SUCCESS, finished_ts and row counts for a run.
	MarkEvalRunSucceeded(ctx context.Context, runID string, rowsTotal, rowsErrored int) error

	// InsertJudgments inserts the full batch of output records for a run.
	InsertJudgments(ctx context.Context, runID string, records []*judge.OutputRecord) error

	// ListRecentEvalRuns retrieves the most recent eval runs, newest first.
	ListRecentEvalRuns(ctx context.Context, limit int) ([]*EvalRunRow, error)
}

// BigQueryRunRepository is the concrete implementation of RunRepository.
// It holds a shared BigQuery client to avoid creating a new connection for
// each operation.
type BigQueryRunRepository struct {
	client    *bigquery.Client
	datasetID string
}

// NewBigQueryRunRepository creates a new instance of BigQueryRunRepository
// with a shared BigQuery client for the given project and dataset.
func NewBigQueryRunRepository(ctx context.Context, projectID, datasetID string) (*BigQueryRunRepository, error) {
	if projectID == "" {
		return nil, fmt.Errorf("NewBigQueryRunRepository: project ID is required")
	}
	if datasetID == "" {
		return nil, fmt.Errorf("NewBigQueryRunRepository: dataset ID is required")
	}

	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryRunRepository: creating client: %w", err)
	}

	return &BigQueryRunRepository{
		client:    client,
		datasetID: datasetID,
	}, nil
}

// Close closes the BigQuery client connection.
func (r *BigQueryRunRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// StartEvalRun delegates to StartEvalRunWithClient with the shared client.
func (r *BigQueryRunRepository) StartEvalRun(ctx context.Context, promptVariant, modelName string, temperature float64, inputURI, outputURI string) (string, error) {
	return StartEvalRunWithClient(ctx, r.client, r.datasetID, promptVariant, modelName, temperature, inputURI, outputURI)
}

// MarkEvalRunFailed delegates to MarkEvalRunFailedWithClient with the shared client.
func (r *BigQueryRunRepository) MarkEvalRunFailed(ctx context.Context, runID string, runErr error) {
	MarkEvalRunFailedWithClient(ctx, r.client, r.datasetID, runID, runErr)
}

// MarkEvalRunSucceeded delegates to MarkEvalRunSucceededWithClient with the shared client.
func (r *BigQueryRunRepository) MarkEvalRunSucceeded(ctx context.Context, runID string, rowsTotal, rowsErrored int) error {
	return MarkEvalRunSucceededWithClient(ctx, r.client, r.datasetID, runID, rowsTotal, rowsErrored)
}

// InsertJudgments maps output records to judgment rows and inserts them with
// the shared client.
func (r *BigQueryRunRepository) InsertJudgments(ctx context.Context, runID string, records []*judge.OutputRecord) error {
	now := time.Now()

	rows := make([]*JudgmentRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, &JudgmentRow{
			JudgmentID:       newJudgmentID(),
			RunID:            runID,
			TurnID:           rec.TurnID,
			OriginalQuestion: rec.OriginalQuestion,
			OriginalAnswer:   rec.OriginalAnswer,
			ConversationTurn: rec.ConversationTurn,
			Label:            rec.Label,
			Explanation:      rec.Explanation,
			CreatedTS:        now,
		})
	}

	return InsertJudgmentsWithClient(ctx, r.client, r.datasetID, rows)
}

// ListRecentEvalRuns delegates to ListRecentEvalRunsWithClient with the shared client.
func (r *BigQueryRunRepository) ListRecentEvalRuns(ctx context.Context, limit int) ([]*EvalRunRow, error) {
	return ListRecentEvalRunsWithClient(ctx, r.client, r.datasetID, limit)
}
