package answer

import (
	"context"

	"clarifycoder/internal/llm"
)

const autoSystemPrompt = "You are a precise assistant. " +
	"Answer in ONLY 1-3 words. No explanations, no full sentences."

// FallbackAnswer substitutes for an answer when the completion service fails
// for an individual question. Partial failure does not block the rest of the
// batch.
const FallbackAnswer = "N/A"

// Auto answers questions with the completion service, one short answer per
// question.
type Auto struct {
	client llm.Client
}

// NewAuto creates an LLM-backed answerer.
func NewAuto(client llm.Client) *Auto {
	return &Auto{client: client}
}

// Resolve queries the service once per question. Supplied answers, when
// present, take priority and skip the service entirely.
func (a *Auto) Resolve(ctx context.Context, questions []string, prompt string, supplied []string) (Bundle, error) {
	if len(questions) == 0 {
		return emptyBundle(prompt), nil
	}
	if len(supplied) > 0 {
		return bundleFor(questions, supplied, prompt)
	}

	answers := make([]string, 0, len(questions))
	for _, q := range questions {
		ans, err := a.client.CompleteWithSystem(ctx, autoSystemPrompt, q)
		if err != nil || ans == "" {
			ans = FallbackAnswer
		}
		answers = append(answers, ans)
	}

	return bundleFor(questions, answers, prompt)
}
