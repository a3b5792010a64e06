package judge

import "fmt"

// FormatConversationTurn renders one input row into the single text block sent
// to the model as the user message. The format is fixed; the instruction
// prompts reference the "PersonA:" / "PersonB:" speakers by name.
func FormatConversationTurn(question, answer string) string {
	return fmt.Sprintf("PersonA: %s PersonB: %s", question, answer)
}
