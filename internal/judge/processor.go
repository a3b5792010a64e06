package judge

import (
	"context"
	"encoding/json"
	"fmt"
)

// ProcessRow judges a single conversation turn and always returns an output
// record. Any failure along the way — invocation failure, non-JSON reply,
// JSON object missing the expected fields — is swallowed and recorded as an
// ERROR label so that one bad row can never abort a batch. Configuration
// problems are the caller's to catch before this point.
func ProcessRow(ctx context.Context, svc CompletionService, instruction string, row *ConversationRow) *OutputRecord {
	turn := FormatConversationTurn(row.Question, row.Answer)

	rec := &OutputRecord{
		TurnID:           row.TurnID,
		OriginalQuestion: row.Question,
		OriginalAnswer:   row.Answer,
		ConversationTurn: turn,
	}

	judgment, err := judgeTurn(ctx, svc, instruction, turn)
	if err != nil {
		rec.Label = ErrorLabel
		rec.Explanation = fmt.Sprintf("Failed to parse LLM response: %v", err)
		return rec
	}

	rec.Label = judgment.Label
	rec.Explanation = judgment.Explanation
	return rec
}

// judgeTurn runs the two failure-prone steps for one turn: the completion call
// and the extraction + parse of the verdict.
func judgeTurn(ctx context.Context, svc CompletionService, instruction, turn string) (*Judgment, error) {
	reply, err := svc.Complete(ctx, instruction, turn)
	if err != nil {
		return nil, err
	}

	clean := ExtractJSONBlock(reply)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}

	label, err := getStringField(obj, "label")
	if err != nil {
		return nil, err
	}
	explanation, err := getStringField(obj, "explanation")
	if err != nil {
		return nil, err
	}

	return &Judgment{Label: label, Explanation: explanation}, nil
}

// getStringField reads a required string field from a decoded JSON object.
func getStringField(obj map[string]interface{}, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("missing %q field in model output", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is %T, want string", key, v)
	}
	return s, nil
}
