package repair

import (
	"context"
	"fmt"
	"strings"

	"clarifycoder/internal/critic"
	"clarifycoder/internal/llm"
)

const repairSystemPrompt = `You fix broken Go code. You receive a snippet and
the failure report from its evaluation. Return only the corrected code, with
no commentary and no markdown fences.`

// LLM asks a model to rewrite the failing code. Any non-empty response is
// taken as the repair attempt; verification is the re-evaluation's job.
type LLM struct {
	client llm.Client
}

// NewLLM creates a model-backed repairer.
func NewLLM(client llm.Client) *LLM {
	return &LLM{client: client}
}

// Repair forwards the code and failure details to the model.
func (r *LLM) Repair(ctx context.Context, code string, verdict critic.Verdict) (Result, error) {
	if err := validateInput(code); err != nil {
		return Result{}, err
	}
	if verdict.Status == critic.StatusUnsupported {
		return unchanged(code, "unsupported task, no repair available"), nil
	}

	prompt := fmt.Sprintf("Code:\n%s\n\nEvaluation result: %s\nDetails: %s",
		code, verdict.Status, verdict.Details)
	resp, err := r.client.CompleteWithSystem(ctx, repairSystemPrompt, prompt)
	if err != nil {
		return unchanged(code, fmt.Sprintf("repair service unavailable: %v", err)), nil
	}

	fixed := stripFences(resp)
	if fixed == "" {
		return unchanged(code, "empty repair response"), nil
	}
	return Result{Code: fixed, Applied: true, Reason: "model rewrite"}, nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```go", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
