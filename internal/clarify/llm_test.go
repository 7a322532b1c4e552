package clarify

import (
	"context"
	"errors"
	"testing"

	"clarifycoder/internal/lang"
)

func TestLLMDetect(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		response string
		err      error
		want     []string
	}{
		{
			name:     "single question passes through",
			response: "Should the sort be ascending or descending?",
			want:     []string{"Should the sort be ascending or descending?"},
		},
		{
			name:     "none means clear",
			response: "none",
			want:     nil,
		},
		{
			name:     "multi-question answer collapses to the first",
			response: "1. Which format?\n2. Which encoding?\n3. Which locale?",
			want:     []string{"Which format?"},
		},
		{
			name:     "bulleted answer is trimmed",
			response: "- Which file should I read?",
			want:     []string{"Which file should I read?"},
		},
		{
			name:     "service failure degrades to clear",
			err:      errors.New("service unreachable"),
			want:     nil,
		},
		{
			name:     "blank response means clear",
			response: "   ",
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockLLMClient{
				CompleteWithSystemFunc: func(context.Context, string, string) (string, error) {
					return tt.response, tt.err
				},
			}
			c := NewLLM(mock)

			res, err := c.Detect(ctx, "sort my data somehow")
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if len(res.Clarifications) != len(tt.want) {
				t.Fatalf("questions = %v, want %v", res.Clarifications, tt.want)
			}
			for i := range tt.want {
				if res.Clarifications[i] != tt.want[i] {
					t.Errorf("question[%d] = %q, want %q", i, res.Clarifications[i], tt.want[i])
				}
			}
			wantStatus := StatusClear
			if len(tt.want) > 0 {
				wantStatus = StatusAmbiguous
			}
			if res.Status != wantStatus {
				t.Errorf("status = %v, want %v", res.Status, wantStatus)
			}
		})
	}
}

func TestLLMDetectLanguageGuardSkipsService(t *testing.T) {
	mock := &MockLLMClient{}
	c := NewLLM(mock)

	res, err := c.Detect(context.Background(), "write this in ruby")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(res.Clarifications) != 1 || res.Clarifications[0] != lang.Question {
		t.Errorf("expected the language question, got %v", res.Clarifications)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("service should not be called for language-guarded prompts, got %d calls", len(mock.Calls))
	}
}
