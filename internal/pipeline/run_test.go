package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvloznov/convo-judge/internal/config"
	infrabq "github.com/dvloznov/convo-judge/internal/infra/bigquery"
	"github.com/dvloznov/convo-judge/internal/judge"
)

type mockCompletionService struct {
	CompleteFunc func(ctx context.Context, instruction, conversationTurn string) (string, error)
}

func (m *mockCompletionService) Complete(ctx context.Context, instruction, conversationTurn string) (string, error) {
	return m.CompleteFunc(ctx, instruction, conversationTurn)
}

type mockRunRepository struct {
	startErr  error
	runID     string
	failed    bool
	succeeded bool

	insertedRunID   string
	insertedRecords []*judge.OutputRecord
	rowsTotal       int
	rowsErrored     int
}

func (m *mockRunRepository) StartEvalRun(ctx context.Context, promptVariant, modelName string, temperature float64, inputURI, outputURI string) (string, error) {
	if m.startErr != nil {
		return "", m.startErr
	}
	return m.runID, nil
}

func (m *mockRunRepository) MarkEvalRunFailed(ctx context.Context, runID string, runErr error) {
	m.failed = true
}

func (m *mockRunRepository) MarkEvalRunSucceeded(ctx context.Context, runID string, rowsTotal, rowsErrored int) error {
	m.succeeded = true
	m.rowsTotal = rowsTotal
	m.rowsErrored = rowsErrored
	return nil
}

func (m *mockRunRepository) InsertJudgments(ctx context.Context, runID string, records []*judge.OutputRecord) error {
	m.insertedRunID = runID
	m.insertedRecords = records
	return nil
}

func (m *mockRunRepository) ListRecentEvalRuns(ctx context.Context, limit int) ([]*infrabq.EvalRunRow, error) {
	return nil, nil
}

const testInputCSV = `turn_id,personA_question,personB_answer
1,What is your favorite flavor?,Strawberry all the way.
2,Do you like mint chip?,I love mint chip.
`

func writeTestFiles(t *testing.T) (inputPath, promptPath, outputPath string) {
	t.Helper()
	dir := t.TempDir()

	inputPath = filepath.Join(dir, "input.csv")
	if err := os.WriteFile(inputPath, []byte(testInputCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	promptPath = filepath.Join(dir, "prompt.txt")
	if err := os.WriteFile(promptPath, []byte("Judge the conversation."), 0o644); err != nil {
		t.Fatal(err)
	}

	outputPath = filepath.Join(dir, "output.csv")
	return inputPath, promptPath, outputPath
}

func TestExecuteWritesEnrichedOutput(t *testing.T) {
	inputPath, promptPath, outputPath := writeTestFiles(t)

	svc := &mockCompletionService{
		CompleteFunc: func(ctx context.Context, instruction, conversationTurn string) (string, error) {
			if strings.Contains(conversationTurn, "Strawberry") {
				return "```json\n{\"label\": \"True\", \"explanation\": \"matches known preference\"}\n```", nil
			}
			return "```json\n{\"label\": \"False\", \"explanation\": \"contradicts known dislike\"}\n```", nil
		},
	}

	cfg := &config.Config{ModelName: "gemini-2.5-flash"}
	res, err := Execute(context.Background(), RunOptions{
		InputPath:  inputPath,
		PromptPath: promptPath,
		OutputPath: outputPath,
		Variant:    "A",
		Cfg:        cfg,
		Svc:        svc,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Summary.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Summary.Total)
	}
	if res.Summary.TrueCount != 1 || res.Summary.FalseCount != 1 {
		t.Errorf("counts = true:%d false:%d, want 1/1", res.Summary.TrueCount, res.Summary.FalseCount)
	}
	if res.RunID != "" {
		t.Errorf("RunID = %q, want empty without repository", res.RunID)
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "matches known preference") {
		t.Errorf("output missing explanation:\n%s", content)
	}
	if !strings.Contains(content, "PersonA: What is your favorite flavor? PersonB: Strawberry all the way.") {
		t.Errorf("output missing formatted conversation turn:\n%s", content)
	}
}

func TestExecuteRecordsRun(t *testing.T) {
	inputPath, promptPath, outputPath := writeTestFiles(t)

	svc := &mockCompletionService{
		CompleteFunc: func(ctx context.Context, instruction, conversationTurn string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	repo := &mockRunRepository{runID: "run-abc"}
	cfg := &config.Config{ModelName: "gemini-2.5-flash"}
	res, err := Execute(context.Background(), RunOptions{
		InputPath:  inputPath,
		PromptPath: promptPath,
		OutputPath: outputPath,
		Variant:    "B",
		Cfg:        cfg,
		Svc:        svc,
		Repo:       repo,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.RunID != "run-abc" {
		t.Errorf("RunID = %q, want %q", res.RunID, "run-abc")
	}
	if !repo.succeeded {
		t.Error("expected run marked succeeded")
	}
	if repo.insertedRunID != "run-abc" {
		t.Errorf("judgments inserted under run %q, want %q", repo.insertedRunID, "run-abc")
	}
	// Every row errored, but the run itself still completes.
	if repo.rowsTotal != 2 || repo.rowsErrored != 2 {
		t.Errorf("bookkeeping rows = total:%d errored:%d, want 2/2", repo.rowsTotal, repo.rowsErrored)
	}
	if res.Summary.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", res.Summary.ErrorCount)
	}
}

func TestExecuteFailsOnMissingInput(t *testing.T) {
	_, promptPath, outputPath := writeTestFiles(t)

	svc := &mockCompletionService{
		CompleteFunc: func(ctx context.Context, instruction, conversationTurn string) (string, error) {
			return "{}", nil
		},
	}

	_, err := Execute(context.Background(), RunOptions{
		InputPath:  filepath.Join(t.TempDir(), "missing.csv"),
		PromptPath: promptPath,
		OutputPath: outputPath,
		Variant:    "A",
		Cfg:        &config.Config{},
		Svc:        svc,
	})
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestExecuteFailsWhenStartRunFails(t *testing.T) {
	inputPath, promptPath, outputPath := writeTestFiles(t)

	svc := &mockCompletionService{
		CompleteFunc: func(ctx context.Context, instruction, conversationTurn string) (string, error) {
			return "{}", nil
		},
	}

	repo := &mockRunRepository{startErr: errors.New("table not found")}
	_, err := Execute(context.Background(), RunOptions{
		InputPath:  inputPath,
		PromptPath: promptPath,
		OutputPath: outputPath,
		Variant:    "A",
		Cfg:        &config.Config{},
		Svc:        svc,
		Repo:       repo,
	})
	if err == nil {
		t.Fatal("expected error when run bookkeeping cannot start")
	}
}
