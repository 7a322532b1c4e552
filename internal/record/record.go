// Package record persists pipeline artifacts. Each stage appends one
// self-describing JSON line per prompt to its own file, and each batch
// writes one aggregate metrics document.
package record

import (
	"time"
)

// ClarifyRecord captures the clarification stage output for one prompt.
type ClarifyRecord struct {
	Prompt         string    `json:"prompt"`
	Status         string    `json:"status"`
	Clarifications []string  `json:"clarifications"`
	Timestamp      time.Time `json:"timestamp"`
}

// QAPair mirrors one question with its answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerRecord captures the answering stage output.
type AnswerRecord struct {
	Prompt          string    `json:"prompt"`
	QAPairs         []QAPair  `json:"qa_pairs"`
	AugmentedPrompt string    `json:"augmented_prompt"`
	Timestamp       time.Time `json:"timestamp"`
}

// CodeRecord captures the generated source for one prompt.
type CodeRecord struct {
	Prompt    string    `json:"prompt"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// EvalRecord captures one evaluation verdict.
type EvalRecord struct {
	Prompt    string    `json:"prompt"`
	Status    string    `json:"status"`
	Function  string    `json:"function,omitempty"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// RefineRecord captures the single repair attempt and its re-evaluation.
type RefineRecord struct {
	Prompt    string    `json:"prompt"`
	Action    string    `json:"action"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// BatchRecord is the aggregate document written once per batch run.
type BatchRecord struct {
	Total     int                       `json:"total"`
	Metrics   map[string]float64        `json:"metrics"`
	Breakdown map[string]map[string]int `json:"breakdown"`
	Seed      int64                     `json:"seed"`
	Timestamp time.Time                 `json:"timestamp"`
}

// Recorder receives stage artifacts as they are produced. Implementations
// must tolerate being called from a single prompt's stages in order.
type Recorder interface {
	Clarify(rec ClarifyRecord) error
	Answer(rec AnswerRecord) error
	Code(rec CodeRecord) error
	Eval(rec EvalRecord) error
	Refine(rec RefineRecord) error
	Batch(rec BatchRecord) error
}

// Nop discards everything. Useful default for tests and library callers.
type Nop struct{}

func (Nop) Clarify(ClarifyRecord) error { return nil }
func (Nop) Answer(AnswerRecord) error   { return nil }
func (Nop) Code(CodeRecord) error       { return nil }
func (Nop) Eval(EvalRecord) error       { return nil }
func (Nop) Refine(RefineRecord) error   { return nil }
func (Nop) Batch(BatchRecord) error     { return nil }
