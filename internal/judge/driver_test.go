package judge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dvloznov/convo-judge/internal/logger"
)

func testRows(n int) []*ConversationRow {
	rows := make([]*ConversationRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &ConversationRow{
			TurnID:   fmt.Sprintf("%d", i+1),
			Question: fmt.Sprintf("question %d", i+1),
			Answer:   fmt.Sprintf("answer %d", i+1),
		})
	}
	return rows
}

func TestRunBatch_PreservesCountAndOrder(t *testing.T) {
	svc := &mockCompletionService{}
	rows := testRows(5)

	records := RunBatch(context.Background(), svc, "prompt", rows)

	if len(records) != len(rows) {
		t.Fatalf("got %d records, want %d", len(records), len(rows))
	}
	for i, rec := range records {
		if rec.TurnID != rows[i].TurnID {
			t.Errorf("record %d: TurnID = %q, want %q", i, rec.TurnID, rows[i].TurnID)
		}
	}
	if svc.calls != len(rows) {
		t.Errorf("completion service called %d times, want %d", svc.calls, len(rows))
	}
}

func TestRunBatch_ContinuesAfterRowFailure(t *testing.T) {
	// Row 2 fails at invocation; rows 1 and 3 must still be judged.
	svc := &mockCompletionService{
		CompleteFunc: func(ctx context.Context, instruction, turn string) (string, error) {
			if strings.Contains(turn, "question 2") {
				return "", errors.New("rate limited")
			}
			return "```json\n{\"label\":\"True\",\"explanation\":\"ok\"}\n```", nil
		},
	}

	records := RunBatch(context.Background(), svc, "prompt", testRows(3))

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Label != "True" || records[2].Label != "True" {
		t.Errorf("surrounding rows affected: labels %q, %q", records[0].Label, records[2].Label)
	}
	if records[1].Label != ErrorLabel {
		t.Errorf("failed row label = %q, want %q", records[1].Label, ErrorLabel)
	}
	if !strings.Contains(records[1].Explanation, "rate limited") {
		t.Errorf("failed row explanation = %q, want cause included", records[1].Explanation)
	}
}

func TestRunBatch_ProgressLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(buf))

	RunBatch(ctx, &mockCompletionService{}, "prompt", testRows(2))

	output := buf.String()
	for _, want := range []string{"Processed turn", "Batch complete", `"turn_id":"1"`, `"turn_id":"2"`} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %q:\n%s", want, output)
		}
	}
}

func TestRunBatch_TwoPromptVariantsAreIndependent(t *testing.T) {
	// The same input judged under two instruction prompts yields two
	// independent tables of equal length and order.
	svc := &mockCompletionService{
		CompleteFunc: func(ctx context.Context, instruction, turn string) (string, error) {
			label := "True"
			if instruction == "variant B" {
				label = "False"
			}
			return fmt.Sprintf("```json\n{\"label\":%q,\"explanation\":\"via %s\"}\n```", label, instruction), nil
		},
	}

	rows := testRows(4)
	recordsA := RunBatch(context.Background(), svc, "variant A", rows)
	recordsB := RunBatch(context.Background(), svc, "variant B", rows)

	if len(recordsA) != 4 || len(recordsB) != 4 {
		t.Fatalf("got %d/%d records, want 4/4", len(recordsA), len(recordsB))
	}
	for i := range rows {
		if recordsA[i].TurnID != rows[i].TurnID || recordsB[i].TurnID != rows[i].TurnID {
			t.Errorf("record %d out of order", i)
		}
		if recordsA[i].Label != "True" {
			t.Errorf("variant A record %d: label %q, want True", i, recordsA[i].Label)
		}
		if recordsB[i].Label != "False" {
			t.Errorf("variant B record %d: label %q, want False", i, recordsB[i].Label)
		}
	}
}

func TestSummarize(t *testing.T) {
	records := []*OutputRecord{
		{Label: "True"},
		{Label: "True"},
		{Label: "False"},
		{Label: ErrorLabel},
		{Label: "Maybe"},
	}

	s := Summarize(records)

	if s.Total != 5 {
		t.Errorf("Total = %d, want 5", s.Total)
	}
	if s.TrueCount != 2 || s.FalseCount != 1 || s.ErrorCount != 1 || s.OtherCount != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 2/1/1/1", s.TrueCount, s.FalseCount, s.ErrorCount, s.OtherCount)
	}
}
