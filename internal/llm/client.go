// Package llm provides the text-completion capability used by the LLM-backed
// pipeline strategies. Every strategy talks to the same narrow interface so
// tests can substitute deterministic stand-ins.
package llm

import "context"

// Client is the text-in/text-out completion capability. Implementations may
// fail or time out; callers are expected to degrade gracefully rather than
// abort the pipeline.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
