package bigquery

import "time"

type JudgmentRow struct {
	JudgmentID string `bigquery:"judgment_id"` // REQUIRED
	RunID      string `bigquery:"run_id"`      // REQUIRED

	TurnID           string `bigquery:"turn_id"`           // REQUIRED
	OriginalQuestion string `bigquery:"original_question"` // REQUIRED
	OriginalAnswer   string `bigquery:"original_answer"`   // REQUIRED
	ConversationTurn string `bigquery:"conversation_turn"` // REQUIRED

	Label       string `bigquery:"label"`       // REQUIRED ("True"/"False"/"ERROR" or pass-through)
	Explanation string `bigquery:"explanation"` // REQUIRED

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED
}
