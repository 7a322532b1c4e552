package critic

import (
	"context"
	"fmt"
	"strings"

	"clarifycoder/internal/generate"
	"clarifycoder/internal/llm"
)

const reviewSystemPrompt = `You are a strict code reviewer for Go snippets.
Given a task description and a candidate implementation, decide whether the
code correctly solves the task. Respond with exactly one line starting with
"pass" or "fail", optionally followed by a colon and a short reason.`

// Reviewer judges code by asking a language model instead of executing it.
// It applies the same fence stripping and marker short-circuits as the
// sandbox so stub artifacts never reach the model, fenced or not.
type Reviewer struct {
	client llm.Client
}

// NewReviewer creates an LLM-backed critic.
func NewReviewer(client llm.Client) *Reviewer {
	return &Reviewer{client: client}
}

// Evaluate asks the model for a pass/fail verdict on the code.
func (r *Reviewer) Evaluate(ctx context.Context, code string, task string) (Verdict, error) {
	if err := validateCode(code); err != nil {
		return Verdict{}, err
	}

	clean := stripFences(code)
	if strings.HasPrefix(clean, generate.StubMarker) {
		return Verdict{Status: StatusUnsupported, Details: "Non-Go language requested"}, nil
	}
	if strings.HasPrefix(clean, generate.NoTemplateMarker) {
		return Verdict{Status: StatusInvalid, Details: "No usable code generated"}, nil
	}

	prompt := fmt.Sprintf("Task:\n%s\n\nCode:\n%s", task, clean)
	resp, err := r.client.CompleteWithSystem(ctx, reviewSystemPrompt, prompt)
	if err != nil {
		return Verdict{Status: StatusFail, Details: fmt.Sprintf("Review unavailable: %v", err)}, nil
	}

	return parseReview(resp), nil
}

// parseReview extracts the pass/fail token from the first non-empty line of
// the model response. Anything unrecognizable counts as a failure.
func parseReview(resp string) Verdict {
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		detail := ""
		if idx := strings.Index(line, ":"); idx >= 0 {
			detail = strings.TrimSpace(line[idx+1:])
		}
		switch {
		case strings.HasPrefix(lower, "pass"):
			if detail == "" {
				detail = "Review passed"
			}
			return Verdict{Status: StatusPass, Details: detail}
		case strings.HasPrefix(lower, "fail"):
			if detail == "" {
				detail = "Review failed"
			}
			return Verdict{Status: StatusFail, Details: detail}
		}
		break
	}
	return Verdict{Status: StatusFail, Details: "Unrecognized review response"}
}
