package clarify

import (
	"context"
	"strings"

	"clarifycoder/internal/lang"
	"clarifycoder/internal/llm"
)

const llmSystemPrompt = "You detect ambiguity in coding prompts. " +
	"If the prompt is clear, reply 'none'. " +
	"If it is ambiguous, return only the ONE most important concise clarifying question. " +
	"Do NOT list multiple questions. " +
	"This system only supports Go."

// LLM asks the completion service for the single most important clarifying
// question. The language check still takes priority and never reaches the
// service.
type LLM struct {
	client llm.Client
	guard  *lang.Guard
}

// NewLLM creates an LLM-backed clarifier.
func NewLLM(client llm.Client) *LLM {
	return &LLM{client: client, guard: lang.DefaultGuard()}
}

// Detect asks the service whether the prompt is ambiguous. The result carries
// at most one question; a multi-question answer is collapsed to its first
// question. A service failure degrades to a clear verdict.
func (c *LLM) Detect(ctx context.Context, prompt string) (Result, error) {
	if err := validatePrompt(prompt); err != nil {
		return Result{}, err
	}

	if c.guard.Detect(strings.ToLower(prompt)) {
		return resultFor(prompt, []string{lang.Question}), nil
	}

	text, err := c.client.CompleteWithSystem(ctx, llmSystemPrompt, prompt)
	if err != nil {
		return resultFor(prompt, nil), nil
	}

	question := collapseToOne(text)
	if question == "" {
		return resultFor(prompt, nil), nil
	}
	return resultFor(prompt, []string{question}), nil
}

// collapseToOne reduces a free-text answer to at most one question.
func collapseToOne(text string) string {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "", "none", "clear", "no clarification needed":
		return ""
	}
	// Keep only the first non-empty line in case the model listed several.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. ")
		if line != "" {
			return line
		}
	}
	return ""
}
