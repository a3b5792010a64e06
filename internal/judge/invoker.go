package judge

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/dvloznov/convo-judge/internal/config"
)

// completeWithModel sends one two-message exchange (system instruction +
// conversation turn) to Gemini and returns the raw text of the reply.
//
// All failure causes are deliberately collapsed into one generic invocation
// error carrying the original cause: transport errors, service-side errors and
// empty replies look the same to the caller. There is no retry, and no timeout
// beyond whatever the underlying client does by default. The non-streaming
// call is used; incremental streaming is never requested.
func completeWithModel(ctx context.Context, cfg *config.Config, instruction, conversationTurn string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("completeWithModel: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: conversationTurn},
			},
		},
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: genai.Ptr(float32(cfg.Temperature)),
	}

	resp, err := client.Models.GenerateContent(ctx, cfg.ModelName, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("completeWithModel: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return "", fmt.Errorf("completeWithModel: empty response from model")
	}

	return rawText, nil
}
