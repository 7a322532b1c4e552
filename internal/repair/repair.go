// Package repair implements the single-shot code fixing stage. A repairer
// gets the rejected code together with the critic's verdict and returns a
// candidate replacement; the pipeline re-evaluates at most once.
package repair

import (
	"context"
	"errors"

	"clarifycoder/internal/critic"
)

// Result carries the repair outcome. Applied is false when the repairer
// could not improve the code, in which case Code echoes the input.
type Result struct {
	Code    string
	Applied bool
	Reason  string
}

// Repairer attempts to fix code that failed evaluation.
type Repairer interface {
	Repair(ctx context.Context, code string, verdict critic.Verdict) (Result, error)
}

func validateInput(code string) error {
	if code == "" {
		return errors.New("repair: empty code")
	}
	return nil
}

// unchanged wraps the input as a no-op result.
func unchanged(code, reason string) Result {
	return Result{Code: code, Applied: false, Reason: reason}
}
