// Package clarify detects ambiguity in coding prompts and raises clarifying
// questions before any code is generated.
package clarify

import (
	"context"
	"fmt"
	"strings"
)

// Status describes the clarification outcome for a prompt.
type Status string

const (
	StatusClear     Status = "clear"
	StatusAmbiguous Status = "ambiguous"
)

// Result is the outcome of ambiguity detection for one prompt.
// Status is derived: ambiguous iff Clarifications is non-empty.
type Result struct {
	OriginalPrompt string   `json:"original_prompt"`
	Status         Status   `json:"status"`
	Clarifications []string `json:"clarifications"`
}

// Ambiguous reports whether the prompt raised any clarifying questions.
func (r Result) Ambiguous() bool {
	return r.Status == StatusAmbiguous
}

// Clarifier detects ambiguities in a prompt and produces clarifying questions.
type Clarifier interface {
	Detect(ctx context.Context, prompt string) (Result, error)
}

// Rule maps a trigger substring to a clarifying question. Suppress, when
// non-nil, is called with the lowercased prompt and skips the question when
// it returns true (the prompt already answers it).
type Rule struct {
	Key      string
	Trigger  string
	Question string
	Suppress func(prompt string) bool
}

func resultFor(prompt string, questions []string) Result {
	status := StatusClear
	if len(questions) > 0 {
		status = StatusAmbiguous
	}
	return Result{
		OriginalPrompt: prompt,
		Status:         status,
		Clarifications: questions,
	}
}

func validatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("prompt must be non-empty text")
	}
	return nil
}
