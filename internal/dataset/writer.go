package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/dvloznov/convo-judge/internal/judge"
)

// OutputHeader is the column order of the judged output table.
var OutputHeader = []string{
	"turn_id",
	"original_question",
	"original_answer",
	"conversation_turn",
	"label",
	"explanation",
}

// RenderRecords encodes output records as CSV bytes with a header row,
// preserving record order.
func RenderRecords(records []*judge.OutputRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(OutputHeader); err != nil {
		return nil, fmt.Errorf("RenderRecords: write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.TurnID,
			rec.OriginalQuestion,
			rec.OriginalAnswer,
			rec.ConversationTurn,
			rec.Label,
			rec.Explanation,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("RenderRecords: write row for turn %s: %w", rec.TurnID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("RenderRecords: flush: %w", err)
	}

	return buf.Bytes(), nil
}
