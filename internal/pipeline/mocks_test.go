package pipeline

import (
	"context"
	"sync"

	"clarifycoder/internal/answer"
	"clarifycoder/internal/clarify"
	"clarifycoder/internal/critic"
	"clarifycoder/internal/generate"
	"clarifycoder/internal/record"
	"clarifycoder/internal/repair"
)

// --- Stage mocks ---

type MockClarifier struct {
	DetectFunc func(ctx context.Context, prompt string) (clarify.Result, error)
}

func (m *MockClarifier) Detect(ctx context.Context, prompt string) (clarify.Result, error) {
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, prompt)
	}
	return clarify.Result{OriginalPrompt: prompt, Status: clarify.StatusClear}, nil
}

type MockAnswerer struct {
	ResolveFunc func(ctx context.Context, questions []string, prompt string, supplied []string) (answer.Bundle, error)
}

func (m *MockAnswerer) Resolve(ctx context.Context, questions []string, prompt string, supplied []string) (answer.Bundle, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, questions, prompt, supplied)
	}
	return answer.Bundle{AugmentedPrompt: prompt}, nil
}

type MockGenerator struct {
	SynthesizeFunc func(ctx context.Context, prompt string) (generate.Artifact, error)
}

func (m *MockGenerator) Synthesize(ctx context.Context, prompt string) (generate.Artifact, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, prompt)
	}
	return generate.Artifact{Source: "func noop() {}"}, nil
}

type MockCritic struct {
	EvaluateFunc func(ctx context.Context, code string, task string) (critic.Verdict, error)

	// State for verification
	mu    sync.Mutex
	Evals []string
}

func (m *MockCritic) Evaluate(ctx context.Context, code string, task string) (critic.Verdict, error) {
	m.mu.Lock()
	m.Evals = append(m.Evals, code)
	m.mu.Unlock()
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, code, task)
	}
	return critic.Verdict{Status: critic.StatusPass, Details: "ok"}, nil
}

type MockRepairer struct {
	RepairFunc func(ctx context.Context, code string, verdict critic.Verdict) (repair.Result, error)

	// State for verification
	Attempts int
}

func (m *MockRepairer) Repair(ctx context.Context, code string, verdict critic.Verdict) (repair.Result, error) {
	m.Attempts++
	if m.RepairFunc != nil {
		return m.RepairFunc(ctx, code, verdict)
	}
	return repair.Result{Code: code, Applied: false, Reason: "no applicable rule"}, nil
}

// --- MemRecorder ---

type MemRecorder struct {
	mu       sync.Mutex
	Clarifys []record.ClarifyRecord
	Answers  []record.AnswerRecord
	Codes    []record.CodeRecord
	Evals    []record.EvalRecord
	Refines  []record.RefineRecord
	Batches  []record.BatchRecord
}

func (m *MemRecorder) Clarify(rec record.ClarifyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clarifys = append(m.Clarifys, rec)
	return nil
}

func (m *MemRecorder) Answer(rec record.AnswerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Answers = append(m.Answers, rec)
	return nil
}

func (m *MemRecorder) Code(rec record.CodeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Codes = append(m.Codes, rec)
	return nil
}

func (m *MemRecorder) Eval(rec record.EvalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Evals = append(m.Evals, rec)
	return nil
}

func (m *MemRecorder) Refine(rec record.RefineRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refines = append(m.Refines, rec)
	return nil
}

func (m *MemRecorder) Batch(rec record.BatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Batches = append(m.Batches, rec)
	return nil
}
