package judge

// ErrorLabel is the sentinel label written when a row cannot be judged.
// It is injected by the pipeline, never returned by the model itself.
const ErrorLabel = "ERROR"

// ConversationRow is one question/answer turn read from the input table.
type ConversationRow struct {
	TurnID   string // from "turn_id"
	Question string // from "personA_question"
	Answer   string // from "personB_answer"
}

// Judgment is the verdict parsed out of one model reply. The label is
// expected to be "True" or "False" but is passed through as-is; the pipeline
// does not validate it against a vocabulary.
type Judgment struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

// OutputRecord is one row of the enriched output table. Exactly one record is
// produced per input row, in input order, whether or not judging succeeded.
type OutputRecord struct {
	TurnID           string
	OriginalQuestion string
	OriginalAnswer   string
	ConversationTurn string
	Label            string
	Explanation      string
}
