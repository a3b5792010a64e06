package judge

import (
	"context"

	"github.com/dvloznov/convo-judge/internal/logger"
)

// RunBatch judges every input row with the given instruction prompt, strictly
// sequentially and in input order. The returned slice has exactly one record
// per input row; rows that failed carry the ERROR label. All records are held
// in memory — persistence is the caller's concern and happens once, after the
// whole batch.
func RunBatch(ctx context.Context, svc CompletionService, instruction string, rows []*ConversationRow) []*OutputRecord {
	log := logger.FromContext(ctx)

	records := make([]*OutputRecord, 0, len(rows))
	for _, row := range rows {
		rec := ProcessRow(ctx, svc, instruction, row)
		records = append(records, rec)

		log.Info().
			Str("turn_id", rec.TurnID).
			Str("label", rec.Label).
			Msg("Processed turn")
	}

	log.Info().Int("rows", len(records)).Msg("Batch complete")

	return records
}
