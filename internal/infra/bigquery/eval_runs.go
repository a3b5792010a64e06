package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

type EvalRunRow struct {
	RunID         string `bigquery:"run_id"`         // REQUIRED
	PromptVariant string `bigquery:"prompt_variant"` // REQUIRED, e.g. "A" / "B"

	ModelName   string  `bigquery:"model_name"`  // REQUIRED
	Temperature float64 `bigquery:"temperature"` // REQUIRED

	InputURI  string `bigquery:"input_uri"`  // NULLABLE
	OutputURI string `bigquery:"output_uri"` // NULLABLE

	RunDate    civil.Date             `bigquery:"run_date"`    // REQUIRED
	StartedTS  time.Time              `bigquery:"started_ts"`  // REQUIRED
	FinishedTS bigquery.NullTimestamp `bigquery:"finished_ts"` // NULLABLE

	Status       string `bigquery:"status"`        // RUNNING / SUCCESS / FAILED
	ErrorMessage string `bigquery:"error_message"` // NULLABLE

	RowsTotal   bigquery.NullInt64 `bigquery:"rows_total"`   // NULLABLE until finished
	RowsErrored bigquery.NullInt64 `bigquery:"rows_errored"` // NULLABLE until finished
}
