// Package dataset reads conversation-turn tables and writes judged output
// tables as CSV.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/dvloznov/convo-judge/internal/judge"
)

// Input column names expected in the conversation CSV. Column order does not
// matter and extra columns are ignored.
const (
	ColumnTurnID   = "turn_id"
	ColumnQuestion = "personA_question"
	ColumnAnswer   = "personB_answer"
)

// ParseConversations decodes a conversation CSV. The header row must contain
// the turn_id, personA_question and personB_answer columns; a missing column
// is a configuration error that aborts the run instead of producing ERROR rows.
func ParseConversations(content []byte) ([]*judge.ConversationRow, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ParseConversations: parse CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("ParseConversations: empty CSV")
	}

	idx, err := headerIndex(allRows[0], []string{ColumnTurnID, ColumnQuestion, ColumnAnswer})
	if err != nil {
		return nil, fmt.Errorf("ParseConversations: %w", err)
	}

	rows := make([]*judge.ConversationRow, 0, len(allRows)-1)
	for _, rec := range allRows[1:] {
		rows = append(rows, &judge.ConversationRow{
			TurnID:   rec[idx[ColumnTurnID]],
			Question: rec[idx[ColumnQuestion]],
			Answer:   rec[idx[ColumnAnswer]],
		})
	}

	return rows, nil
}

// ParseRecords decodes a previously written output CSV back into records.
// Used by the tools that summarize or upload existing results.
func ParseRecords(content []byte) ([]*judge.OutputRecord, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ParseRecords: parse CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("ParseRecords: empty CSV")
	}

	idx, err := headerIndex(allRows[0], OutputHeader)
	if err != nil {
		return nil, fmt.Errorf("ParseRecords: %w", err)
	}

	records := make([]*judge.OutputRecord, 0, len(allRows)-1)
	for _, rec := range allRows[1:] {
		records = append(records, &judge.OutputRecord{
			TurnID:           rec[idx["turn_id"]],
			OriginalQuestion: rec[idx["original_question"]],
			OriginalAnswer:   rec[idx["original_answer"]],
			ConversationTurn: rec[idx["conversation_turn"]],
			Label:            rec[idx["label"]],
			Explanation:      rec[idx["explanation"]],
		})
	}

	return records, nil
}

// headerIndex maps required column names to their positions in the header row.
func headerIndex(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	return idx, nil
}
