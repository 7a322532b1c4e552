package generate

import (
	"context"
	"strings"

	"clarifycoder/internal/lang"
	"clarifycoder/internal/llm"
)

const llmSystemPrompt = "You write correct, minimal Go code only. " +
	"Define plain functions without a package clause or a main function. " +
	"Do not explain."

// LLM forwards the clarified prompt to the completion service. The non-Go
// language guard still applies before any request is made.
type LLM struct {
	client llm.Client
	guard  *lang.Guard
}

// NewLLM creates an LLM-backed generator.
func NewLLM(client llm.Client) *LLM {
	return &LLM{client: client, guard: lang.DefaultGuard()}
}

// Synthesize returns the raw completion text as the artifact. A service
// failure degrades to the no-template marker so the pipeline can continue.
func (g *LLM) Synthesize(ctx context.Context, augmentedPrompt string) (Artifact, error) {
	if err := validatePrompt(augmentedPrompt); err != nil {
		return Artifact{}, err
	}

	if g.guard.Detect(strings.ToLower(augmentedPrompt)) {
		return Artifact{Source: StubMarker}, nil
	}

	code, err := g.client.CompleteWithSystem(ctx, llmSystemPrompt, augmentedPrompt)
	if err != nil || strings.TrimSpace(code) == "" {
		return Artifact{Source: NoTemplateMarker}, nil
	}

	return Artifact{Source: code}, nil
}
