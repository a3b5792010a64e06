package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/convo-judge/internal/logger"
)

const (
	evalRunsTable  = "eval_runs"
	judgmentsTable = "judgments"
)

// StartEvalRunWithClient inserts a new row into <dataset>.eval_runs with
// status=RUNNING and returns the generated run_id. Uses DML INSERT with query
// parameters to avoid streaming-buffer issues on the later status UPDATE.
func StartEvalRunWithClient(ctx context.Context, client *bigquery.Client, datasetID, promptVariant, modelName string, temperature float64, inputURI, outputURI string) (string, error) {
	runID := uuid.NewString()
	started := time.Now()

	q := client.Query(fmt.Sprintf(`
		INSERT %s.%s (
			run_id,
			prompt_variant,
			model_name,
			temperature,
			input_uri,
			output_uri,
			run_date,
			started_ts,
			status
		)
		VALUES (
			@run_id,
			@prompt_variant,
			@model_name,
			@temperature,
			@input_uri,
			@output_uri,
			@run_date,
			@started_ts,
			@status
		)
	`, datasetID, evalRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "prompt_variant", Value: promptVariant},
		{Name: "model_name", Value: modelName},
		{Name: "temperature", Value: temperature},
		{Name: "input_uri", Value: inputURI},
		{Name: "output_uri", Value: outputURI},
		{Name: "run_date", Value: civil.DateOf(started)},
		{Name: "started_ts", Value: started},
		{Name: "status", Value: "RUNNING"},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return "", fmt.Errorf("StartEvalRun: running insert query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("StartEvalRun: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return "", fmt.Errorf("StartEvalRun: job error: %w", err)
	}

	return runID, nil
}

// MarkEvalRunFailedWithClient sets status=FAILED, finished_ts and
// error_message. Failures here are logged, not returned: run bookkeeping must
// never mask the original error the caller is already handling.
func MarkEvalRunFailedWithClient(ctx context.Context, client *bigquery.Client, datasetID, runID string, runErr error) {
	log := logger.FromContext(ctx)

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	q := client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, datasetID, evalRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "FAILED"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "run_id", Value: runID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Str("run_id", runID).
			Msg("MarkEvalRunFailed: running update query")
		return
	}

	status, err := job.Wait(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Str("run_id", runID).
			Msg("MarkEvalRunFailed: waiting for job")
		return
	}
	if err := status.Err(); err != nil {
		log.Error().
			Err(err).
			Str("run_id", runID).
			Msg("MarkEvalRunFailed: job completed with error")
	}
}

// MarkEvalRunSucceededWithClient sets status=SUCCESS, finished_ts and the
// final row counts, and clears error_message.
func MarkEvalRunSucceededWithClient(ctx context.Context, client *bigquery.Client, datasetID, runID string, rowsTotal, rowsErrored int) error {
	q := client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = "",
		    rows_total = @rows_total,
		    rows_errored = @rows_errored
		WHERE run_id = @run_id
	`, datasetID, evalRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "SUCCESS"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "rows_total", Value: rowsTotal},
		{Name: "rows_errored", Value: rowsErrored},
		{Name: "run_id", Value: runID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("MarkEvalRunSucceeded: running update query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("MarkEvalRunSucceeded: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("MarkEvalRunSucceeded: job error: %w", err)
	}

	return nil
}

// ListRecentEvalRunsWithClient retrieves the most recent eval runs, newest
// first.
func ListRecentEvalRunsWithClient(ctx context.Context, client *bigquery.Client, datasetID string, limit int) ([]*EvalRunRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			run_id,
			prompt_variant,
			model_name,
			temperature,
			input_uri,
			output_uri,
			run_date,
			started_ts,
			finished_ts,
			status,
			error_message,
			rows_total,
			rows_errored
		FROM %s.%s
		ORDER BY started_ts DESC
		LIMIT @limit
	`, datasetID, evalRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: limit},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListRecentEvalRuns: reading query: %w", err)
	}

	var runs []*EvalRunRow
	for {
		var row EvalRunRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListRecentEvalRuns: iterating rows: %w", err)
		}
		runs = append(runs, &row)
	}

	return runs, nil
}
