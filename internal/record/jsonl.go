package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JSONLStore appends one JSON document per line to per-stage files under a
// single directory. A mutex serializes writers so batch workers can share
// one store.
type JSONLStore struct {
	dir string
	mu  sync.Mutex
}

// NewJSONLStore creates the directory if needed and returns a store.
func NewJSONLStore(dir string) (*JSONLStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create record dir: %w", err)
	}
	return &JSONLStore{dir: dir}, nil
}

func (s *JSONLStore) appendLine(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return nil
}

func (s *JSONLStore) Clarify(rec ClarifyRecord) error { return s.appendLine("clarify", rec) }
func (s *JSONLStore) Answer(rec AnswerRecord) error   { return s.appendLine("answer", rec) }
func (s *JSONLStore) Code(rec CodeRecord) error       { return s.appendLine("code", rec) }
func (s *JSONLStore) Eval(rec EvalRecord) error       { return s.appendLine("eval", rec) }
func (s *JSONLStore) Refine(rec RefineRecord) error   { return s.appendLine("refine", rec) }

// Batch writes the aggregate document as a standalone timestamped JSON file
// rather than a line, so each run's summary is directly inspectable.
func (s *JSONLStore) Batch(rec BatchRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode batch record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := fmt.Sprintf("batch_%s.json", rec.Timestamp.Format("20060102_150405"))
	if rec.Timestamp.IsZero() {
		name = fmt.Sprintf("batch_%s.json", time.Now().Format("20060102_150405"))
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Dir returns the directory records are written to.
func (s *JSONLStore) Dir() string { return s.dir }
