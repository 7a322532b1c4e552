// Package generate synthesizes Go source for a clarified prompt, either from
// a fixed template table or via the completion service.
package generate

import (
	"context"
	"fmt"
	"strings"
)

// Markers produced instead of code. Downstream stages treat them as data,
// never as exceptions.
const (
	// StubMarker is returned when the prompt requests a non-Go language.
	StubMarker = "// Non-Go language requested, but this system only supports Go."
	// NoTemplateMarker is returned when no template matches the prompt.
	NoTemplateMarker = "// Code template not found for this task"
)

// Artifact is generated source text. It has no identity beyond its text and
// may be syntactically invalid.
type Artifact struct {
	Source string `json:"source"`
}

// IsStub reports whether the artifact is the non-Go language stub.
func (a Artifact) IsStub() bool {
	return strings.HasPrefix(strings.TrimSpace(a.Source), StubMarker)
}

// IsNoTemplate reports whether the artifact is the no-template marker.
func (a Artifact) IsNoTemplate() bool {
	return strings.HasPrefix(strings.TrimSpace(a.Source), NoTemplateMarker)
}

// Generator synthesizes code for an augmented prompt. Synthesis is
// best-effort: an unmatched prompt yields a marker artifact, not an error.
type Generator interface {
	Synthesize(ctx context.Context, augmentedPrompt string) (Artifact, error)
}

func validatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("clarified prompt must be non-empty text")
	}
	return nil
}
