package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTemplateSynthesize(t *testing.T) {
	g := NewTemplate()
	ctx := context.Background()

	tests := []struct {
		name         string
		prompt       string
		wantContains string
	}{
		{"factorial", "Compute the factorial of 5", "func factorial"},
		{"combo beats single", "Save the results to a file", "func save_results"},
		{"read file combo", "Read the contents of a file", "func read_file"},
		{"append file combo", "Append hello to the log file", "func append_to_file"},
		{"word count combo", "Count the word frequency, then count words", "func word_count"},
		{"palindrome single", "Check if racecar is a palindrome", "func is_palindrome"},
		{"stack push combo", "Push an item onto a stack", "func stack_push"},
		{"merge maps combo", "Merge two maps into one", "func merge_dicts"},
		{"sort plain scan", "Sort these numbers: 3 1 2", "func sort_list"},
		{"http get single", "Fetch the page at example.com", "func fetch_page"},
		{"regex single", "Extract numbers from this text with a regex", "func extract_numbers"},
		{"tensorflow stub", "Train a model with tensorflow", "TensorFlow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art, err := g.Synthesize(ctx, tt.prompt)
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if !strings.Contains(art.Source, tt.wantContains) {
				t.Errorf("Synthesize(%q) = %q, want it to contain %q", tt.prompt, art.Source, tt.wantContains)
			}
		})
	}
}

func TestTemplateSynthesizeMarkers(t *testing.T) {
	g := NewTemplate()
	ctx := context.Background()

	art, err := g.Synthesize(ctx, "Write a python script to sort a list")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !art.IsStub() {
		t.Errorf("expected the language stub, got %q", art.Source)
	}

	art, err = g.Synthesize(ctx, "Do something entirely unheard of")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !art.IsNoTemplate() {
		t.Errorf("expected the no-template marker, got %q", art.Source)
	}
}

func TestTemplateSynthesizeDeterministic(t *testing.T) {
	g := NewTemplate()
	ctx := context.Background()

	first, err := g.Synthesize(ctx, "Generate the fibonacci sequence")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	second, err := g.Synthesize(ctx, "Generate the fibonacci sequence")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if first.Source != second.Source {
		t.Error("same prompt should yield the same template")
	}
}

func TestTemplateSynthesizeEmptyPrompt(t *testing.T) {
	g := NewTemplate()
	if _, err := g.Synthesize(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank prompt")
	}
}

func TestLLMSynthesize(t *testing.T) {
	mock := &MockLLMClient{
		CompleteWithSystemFunc: func(context.Context, string, string) (string, error) {
			return "func add(a, b int) int { return a + b }", nil
		},
	}
	g := NewLLM(mock)

	art, err := g.Synthesize(context.Background(), "Add two numbers")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !strings.Contains(art.Source, "func add") {
		t.Errorf("unexpected artifact: %q", art.Source)
	}
}

func TestLLMSynthesizeDegrades(t *testing.T) {
	mock := &MockLLMClient{
		CompleteWithSystemFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("service unreachable")
		},
	}
	g := NewLLM(mock)

	art, err := g.Synthesize(context.Background(), "Add two numbers")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !art.IsNoTemplate() {
		t.Errorf("service failure should yield the no-template marker, got %q", art.Source)
	}
}

func TestLLMSynthesizeGuard(t *testing.T) {
	mock := &MockLLMClient{}
	g := NewLLM(mock)

	art, err := g.Synthesize(context.Background(), "Write this in typescript")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !art.IsStub() {
		t.Errorf("expected the language stub, got %q", art.Source)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("service should not be called for language-guarded prompts")
	}
}
