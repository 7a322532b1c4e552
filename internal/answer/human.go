package answer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Human resolves questions with human-supplied answers. When Interactive is
// set, missing answers are solicited one per question on In/Out; otherwise a
// missing answer set yields an empty bundle so the caller can resume once
// answers exist. That empty bundle is a pause signal, not a failure.
type Human struct {
	Interactive bool
	In          io.Reader
	Out         io.Writer
}

// NewHuman creates a non-interactive human answerer (frontend mode).
func NewHuman() *Human {
	return &Human{}
}

// NewInteractive creates a human answerer that prompts on out and reads
// answers from in.
func NewInteractive(in io.Reader, out io.Writer) *Human {
	return &Human{Interactive: true, In: in, Out: out}
}

// Resolve pairs supplied answers with questions, or solicits them when
// interactive input is permitted.
func (h *Human) Resolve(_ context.Context, questions []string, prompt string, supplied []string) (Bundle, error) {
	if len(questions) == 0 {
		return emptyBundle(prompt), nil
	}

	if len(supplied) == 0 {
		if !h.Interactive {
			return emptyBundle(prompt), nil
		}
		collected, err := h.solicit(questions)
		if err != nil {
			return Bundle{}, err
		}
		supplied = collected
	}

	return bundleFor(questions, supplied, prompt)
}

func (h *Human) solicit(questions []string) ([]string, error) {
	reader := bufio.NewReader(h.In)
	answers := make([]string, 0, len(questions))
	for _, q := range questions {
		fmt.Fprintf(h.Out, "%s\nYour answer: ", q)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("reading answer: %w", err)
		}
		answers = append(answers, strings.TrimSpace(line))
	}
	return answers, nil
}
