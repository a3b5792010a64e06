package judge

import (
	"context"

	"github.com/dvloznov/convo-judge/internal/config"
)

// CompletionService provides an interface for chat-completion calls.
// This interface enables mocking and testing of the judging pipeline.
type CompletionService interface {
	// Complete sends an instruction prompt (system message) and a formatted
	// conversation turn (user message) and returns the raw text reply.
	Complete(ctx context.Context, instruction, conversationTurn string) (string, error)
}

// GeminiCompletionService is the concrete implementation of CompletionService
// backed by the Gemini API.
type GeminiCompletionService struct {
	cfg *config.Config
}

// NewGeminiCompletionService creates a new instance of GeminiCompletionService.
func NewGeminiCompletionService(cfg *config.Config) *GeminiCompletionService {
	return &GeminiCompletionService{
		cfg: cfg,
	}
}

// Complete delegates to the completeWithModel function.
func (s *GeminiCompletionService) Complete(ctx context.Context, instruction, conversationTurn string) (string, error) {
	return completeWithModel(ctx, s.cfg, instruction, conversationTurn)
}
