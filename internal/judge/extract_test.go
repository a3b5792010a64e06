package judge

import "testing"

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced JSON block",
			input: "```json\n{\"label\":\"True\",\"explanation\":\"x\"}\n```",
			want:  `{"label":"True","explanation":"x"}`,
		},
		{
			name:  "fenced block with surrounding prose",
			input: "Here is my verdict:\n```json\n{\"label\":\"False\"}\n```\nHope that helps!",
			want:  `{"label":"False"}`,
		},
		{
			name:  "multiline fenced content",
			input: "```json\n{\n  \"label\": \"True\",\n  \"explanation\": \"consistent\"\n}\n```",
			want:  "{\n  \"label\": \"True\",\n  \"explanation\": \"consistent\"\n}",
		},
		{
			name:  "no fence returns input unchanged",
			input: `{"label":"True","explanation":"bare"}`,
			want:  `{"label":"True","explanation":"bare"}`,
		},
		{
			name:  "plain text without fence unchanged",
			input: "  I cannot answer that.  ",
			want:  "  I cannot answer that.  ",
		},
		{
			name:  "first of multiple fenced blocks wins",
			input: "```json\n{\"label\":\"True\"}\n```\nand also\n```json\n{\"label\":\"False\"}\n```",
			want:  `{"label":"True"}`,
		},
		{
			name:  "untagged fence is not recognized",
			input: "```\n{\"label\":\"True\"}\n```",
			want:  "```\n{\"label\":\"True\"}\n```",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSONBlock(tt.input)
			if got != tt.want {
				t.Errorf("ExtractJSONBlock(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractJSONBlock_IdempotentWithoutFence(t *testing.T) {
	inputs := []string{
		`{"label":"True","explanation":"x"}`,
		"no json here at all",
		"",
	}

	for _, input := range inputs {
		once := ExtractJSONBlock(input)
		twice := ExtractJSONBlock(once)
		if once != twice {
			t.Errorf("ExtractJSONBlock not idempotent on %q: first %q, second %q", input, once, twice)
		}
	}
}
