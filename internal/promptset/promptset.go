// Package promptset loads prompt corpora and samples batches from them.
package promptset

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
)

//go:embed prompts.jsonl
var defaultCorpus []byte

type promptLine struct {
	Prompt string `json:"prompt"`
}

// Load reads prompts from a JSONL stream, one {"prompt": ...} document per
// line. Blank lines are skipped; a malformed line is an error.
func Load(r io.Reader) ([]string, error) {
	var prompts []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var pl promptLine
		if err := json.Unmarshal([]byte(line), &pl); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if pl.Prompt == "" {
			return nil, fmt.Errorf("line %d: missing prompt field", lineNo)
		}
		prompts = append(prompts, pl.Prompt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt corpus: %w", err)
	}
	return prompts, nil
}

// LoadFile reads a JSONL prompt corpus from disk.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt corpus: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in corpus.
func Default() []string {
	prompts, err := Load(bytes.NewReader(defaultCorpus))
	if err != nil {
		panic(fmt.Sprintf("embedded prompt corpus is malformed: %v", err))
	}
	return prompts
}

// Sample draws count prompts without replacement using the given seed. The
// same seed over the same corpus yields the same batch. count <= 0 picks a
// seeded random size between 5 and 10, capped at the corpus size.
func Sample(prompts []string, count int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	if count <= 0 {
		count = 5 + rng.Intn(6)
	}
	if count > len(prompts) {
		count = len(prompts)
	}
	idx := rng.Perm(len(prompts))[:count]
	out := make([]string, count)
	for i, j := range idx {
		out[i] = prompts[j]
	}
	return out
}
