package repair

import (
	"context"
	"strconv"
	"strings"

	"clarifycoder/internal/critic"
)

// RuleBased applies a small fixed set of syntactic patches keyed off the
// verdict. It never consults a model and is fully deterministic.
type RuleBased struct{}

// NewRuleBased creates the deterministic repairer.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Repair inspects the verdict and picks at most one patch. Unsupported
// verdicts are terminal and never patched.
func (r *RuleBased) Repair(_ context.Context, code string, verdict critic.Verdict) (Result, error) {
	if err := validateInput(code); err != nil {
		return Result{}, err
	}

	switch verdict.Status {
	case critic.StatusUnsupported:
		return unchanged(code, "unsupported task, no repair available"), nil
	case critic.StatusFail:
		if fixed, ok := patchMissingReturn(code, verdict.Details); ok {
			return Result{Code: fixed, Applied: true, Reason: "promoted dangling constant to return"}, nil
		}
	case critic.StatusError:
		if isSyntaxComplaint(verdict.Details) {
			if fixed, ok := patchMissingBrace(code); ok {
				return Result{Code: fixed, Applied: true, Reason: "appended missing brace to func header"}, nil
			}
		}
	}

	return unchanged(code, "no applicable rule"), nil
}

// patchMissingReturn handles functions that compute a value but never return
// it. Evidence is a fail verdict whose detail reports a zero value plus a
// line in the body that is a bare integer constant.
func patchMissingReturn(code, details string) (string, bool) {
	lower := strings.ToLower(details)
	if !strings.Contains(lower, "got 0") &&
		!strings.Contains(lower, "got <nil>") &&
		!strings.Contains(lower, "got none") {
		return "", false
	}

	lines := strings.Split(code, "\n")
	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if _, err := strconv.Atoi(trimmed); err == nil {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			lines[idx] = indent + "return " + trimmed
			return strings.Join(lines, "\n"), true
		}
	}
	return "", false
}

// isSyntaxComplaint reports whether the detail text looks like a parser
// error rather than a runtime one.
func isSyntaxComplaint(details string) bool {
	lower := strings.ToLower(details)
	return strings.Contains(lower, "syntax") ||
		strings.Contains(lower, "expected") ||
		strings.Contains(lower, "unexpected")
}

// patchMissingBrace appends an opening brace to the first func header that
// lacks one.
func patchMissingBrace(code string) (string, bool) {
	lines := strings.Split(code, "\n")
	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "func ") && strings.Contains(trimmed, ")") &&
			!strings.HasSuffix(trimmed, "{") {
			lines[idx] = line + " {"
			return strings.Join(lines, "\n"), true
		}
	}
	return "", false
}
