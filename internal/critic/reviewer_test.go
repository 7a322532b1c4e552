package critic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clarifycoder/internal/generate"
)

func TestReviewerEvaluate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		response   string
		err        error
		wantStatus Status
		wantDetail string
	}{
		{
			name:       "pass verdict",
			response:   "pass: correct recursive implementation",
			wantStatus: StatusPass,
			wantDetail: "correct recursive implementation",
		},
		{
			name:       "fail verdict",
			response:   "fail: off-by-one in the loop bound",
			wantStatus: StatusFail,
			wantDetail: "off-by-one",
		},
		{
			name:       "bare pass token",
			response:   "PASS",
			wantStatus: StatusPass,
		},
		{
			name:       "unrecognized response fails",
			response:   "looks plausible to me",
			wantStatus: StatusFail,
			wantDetail: "Unrecognized",
		},
		{
			name:       "service failure degrades to fail",
			err:        errors.New("service unreachable"),
			wantStatus: StatusFail,
			wantDetail: "Review unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockLLMClient{
				CompleteWithSystemFunc: func(context.Context, string, string) (string, error) {
					return tt.response, tt.err
				},
			}
			r := NewReviewer(mock)

			v, err := r.Evaluate(ctx, "func add(a, b int) int { return a + b }", "add two numbers")
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if v.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", v.Status, tt.wantStatus)
			}
			if tt.wantDetail != "" && !strings.Contains(v.Details, tt.wantDetail) {
				t.Errorf("details = %q, want it to contain %q", v.Details, tt.wantDetail)
			}
		})
	}
}

func TestReviewerMarkersSkipService(t *testing.T) {
	mock := &MockLLMClient{}
	r := NewReviewer(mock)
	ctx := context.Background()

	v, err := r.Evaluate(ctx, generate.StubMarker, "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if v.Status != StatusUnsupported {
		t.Errorf("stub marker: status = %v, want unsupported", v.Status)
	}

	v, err = r.Evaluate(ctx, generate.NoTemplateMarker, "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if v.Status != StatusInvalid {
		t.Errorf("no-template marker: status = %v, want invalid", v.Status)
	}

	v, err = r.Evaluate(ctx, "```go\n"+generate.NoTemplateMarker+"\n```", "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if v.Status != StatusInvalid {
		t.Errorf("fenced no-template marker: status = %v, want invalid", v.Status)
	}

	if len(mock.Calls) != 0 {
		t.Errorf("marker artifacts should never reach the service, got %d calls", len(mock.Calls))
	}
}
