package judge

import (
	"regexp"
	"strings"
)

// jsonFencePattern matches the first ```json ... ``` block in a reply,
// non-greedy, with the fenced content allowed to span multiple lines.
var jsonFencePattern = regexp.MustCompile("(?s)```json(.*?)```")

// ExtractJSONBlock pulls the JSON payload out of a model reply. If the reply
// contains a ```json fenced block, the enclosed text is returned with
// surrounding whitespace trimmed; otherwise the reply is returned unchanged on
// the assumption it is already bare JSON.
//
// This is a best-effort heuristic, not a markdown parser: only the
// ```json-tagged fence variant is recognized, and if multiple fenced blocks
// exist the first one wins. The result is not parsed or validated here.
func ExtractJSONBlock(raw string) string {
	if m := jsonFencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}
