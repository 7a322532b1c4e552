// Package critic judges generated code. The sandbox strategy interprets the
// code with yaegi and checks it against a fixed oracle table; the reviewer
// strategy asks the completion service for a code review.
package critic

import (
	"context"
	"fmt"
	"strings"
)

// Status is the five-way evaluation outcome. It is the single source of
// truth for pipeline branching.
type Status string

const (
	StatusPass        Status = "pass"
	StatusFail        Status = "fail"
	StatusError       Status = "error"       // code raised during execution
	StatusUnsupported Status = "unsupported" // category cannot be judged
	StatusInvalid     Status = "invalid"     // no usable code at all
)

// NeedsRepair reports whether a verdict with this status triggers the single
// repair attempt.
func (s Status) NeedsRepair() bool {
	switch s {
	case StatusFail, StatusError, StatusUnsupported, StatusInvalid:
		return true
	}
	return false
}

// Verdict is the evaluation outcome for one code artifact.
type Verdict struct {
	Status   Status `json:"status"`
	Function string `json:"function,omitempty"` // which oracle matched, if any
	Details  string `json:"details"`
}

// Critic evaluates code, optionally in the context of a task description.
type Critic interface {
	Evaluate(ctx context.Context, code string, task string) (Verdict, error)
}

func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("code must be non-empty text")
	}
	return nil
}

// stripFences removes markdown code fences from completion output.
func stripFences(code string) string {
	code = strings.ReplaceAll(code, "```go", "")
	code = strings.ReplaceAll(code, "```", "")
	return strings.TrimSpace(code)
}
