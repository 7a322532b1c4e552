// Package answer resolves clarifying questions into answers and augments the
// prompt with them before code generation.
package answer

import (
	"context"
	"fmt"
	"strings"
)

// QAPair couples one clarifying question with its answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Bundle carries resolved answers and the augmented prompt. Answers align
// positionally with the questions they resolve. An empty bundle with
// AugmentedPrompt equal to the original prompt signals that answers are not
// yet available and the caller must resume later.
type Bundle struct {
	Answers         []string `json:"answers"`
	QAPairs         []QAPair `json:"qa_pairs"`
	AugmentedPrompt string   `json:"augmented_prompt"`
}

// Answerer resolves clarifying questions for a prompt. supplied may carry
// pre-collected answers (e.g. from a frontend round trip).
type Answerer interface {
	Resolve(ctx context.Context, questions []string, prompt string, supplied []string) (Bundle, error)
}

// Pending reports whether the bundle is a suspension signal: questions were
// asked but no answers are available yet.
func (b Bundle) Pending(questions []string) bool {
	return len(questions) > 0 && len(b.Answers) == 0
}

func emptyBundle(prompt string) Bundle {
	return Bundle{AugmentedPrompt: prompt}
}

// bundleFor pairs answers with questions and appends one "Answer: <a>" line
// per question, in question order.
func bundleFor(questions, answers []string, prompt string) (Bundle, error) {
	if len(answers) != len(questions) {
		return Bundle{}, fmt.Errorf("got %d answers for %d questions", len(answers), len(questions))
	}

	pairs := make([]QAPair, len(questions))
	var sb strings.Builder
	sb.WriteString(prompt)
	for i, q := range questions {
		pairs[i] = QAPair{Question: q, Answer: answers[i]}
		sb.WriteString("\nAnswer: ")
		sb.WriteString(answers[i])
	}

	return Bundle{
		Answers:         answers,
		QAPairs:         pairs,
		AugmentedPrompt: sb.String(),
	}, nil
}
