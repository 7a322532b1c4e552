package critic

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Oracle invocation runs in a child process, not in the host. recover()
// handles ordinary panics inside the interpreter, but a stack overflow from
// unbounded recursion is fatal and unrecoverable; isolating the interpreter
// in its own process means such code kills only the child, which the parent
// classifies as resource exhaustion.

// runnerEnv marks a process started as a sandbox runner child.
const runnerEnv = "CLARIFYCODER_SANDBOX_RUNNER"

// runnerRequest is one evaluation job, passed to the child on stdin.
type runnerRequest struct {
	Code    string   `json:"code"`
	Oracles []Oracle `json:"oracles"`
}

const (
	outcomeVerdict   = "verdict"
	outcomeEvalError = "eval_error"
	outcomeNoMatch   = "no_match"
)

// runnerResult is the child's reply on stdout. Err is set for
// outcomeEvalError; Verdict for outcomeVerdict.
type runnerResult struct {
	Outcome string  `json:"outcome"`
	Verdict Verdict `json:"verdict,omitempty"`
	Err     string  `json:"err,omitempty"`
}

// RunnerInvoked reports whether this process was started as a sandbox
// runner child.
func RunnerInvoked() bool {
	return os.Getenv(runnerEnv) == "1"
}

// RunnerMain is the child entry point: it reads one evaluation request from
// in, interprets it, and writes the reply to out. Callers that may be
// re-executed as a runner (the CLI main, test binaries exercising the
// sandbox) dispatch here before doing anything else.
func RunnerMain(in io.Reader, out io.Writer) int {
	var req runnerRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		fmt.Fprintf(os.Stderr, "bad runner request: %v\n", err)
		return 2
	}
	res := evaluateOracles(req.Code, req.Oracles)
	if err := json.NewEncoder(out).Encode(res); err != nil {
		fmt.Fprintf(os.Stderr, "runner reply failed: %v\n", err)
		return 2
	}
	return 0
}

// evaluateOracles loads the code into a fresh interpreter and runs the
// first oracle whose callable the code defines.
func evaluateOracles(code string, oracles []Oracle) runnerResult {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return runnerResult{Outcome: outcomeEvalError, Err: err.Error()}
	}
	if _, err := safeEval(i, wrapCode(code)); err != nil {
		return runnerResult{Outcome: outcomeEvalError, Err: err.Error()}
	}

	for _, oracle := range oracles {
		v, err := safeEval(i, oracle.Name)
		if err != nil || !v.IsValid() || v.Kind() != reflect.Func {
			continue
		}
		return runnerResult{Outcome: outcomeVerdict, Verdict: runOracle(i, oracle)}
	}
	return runnerResult{Outcome: outcomeNoMatch}
}

// safeEval converts recoverable interpreter panics into errors.
func safeEval(i *interp.Interpreter, src string) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", errExhausted, r)
		}
	}()
	return i.Eval(src)
}

// runOracle invokes the matched callable against every test pair in order,
// short-circuiting at the first mismatch.
func runOracle(i *interp.Interpreter, oracle Oracle) Verdict {
	if oracle.File != nil {
		return runFileOracle(i, oracle)
	}

	for _, pair := range oracle.Pairs {
		call := fmt.Sprintf("%s(%s)", oracle.Name, pair.Args)
		v, err := safeEval(i, call)
		if err != nil {
			if errors.Is(err, errExhausted) {
				return Verdict{Status: StatusFail, Function: oracle.Name,
					Details: fmt.Sprintf("Resource exhaustion: %v", err)}
			}
			return Verdict{Status: StatusError, Function: oracle.Name,
				Details: fmt.Sprintf("Runtime error: %v", err)}
		}
		got := sprintValue(v)
		if got != pair.Want {
			return Verdict{Status: StatusFail, Function: oracle.Name,
				Details: fmt.Sprintf("Input %s: expected %s, got %s", pair.Args, pair.Want, got)}
		}
	}

	return Verdict{Status: StatusPass, Function: oracle.Name,
		Details: fmt.Sprintf("All %d test cases passed", len(oracle.Pairs))}
}

// runFileOracle stages the scratch file, invokes the callable, and verifies
// the resulting file or returned content. The scratch directory is created
// fresh per evaluation and removed afterwards.
func runFileOracle(i *interp.Interpreter, oracle Oracle) Verdict {
	fc := oracle.File

	dir, err := os.MkdirTemp("", "clarifycoder-eval-")
	if err != nil {
		return Verdict{Status: StatusError, Function: oracle.Name,
			Details: fmt.Sprintf("Scratch dir setup failed: %v", err)}
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, fc.FileName)

	if fc.Seed != "" {
		if err := os.WriteFile(path, []byte(fc.Seed), 0644); err != nil {
			return Verdict{Status: StatusError, Function: oracle.Name,
				Details: fmt.Sprintf("Scratch file staging failed: %v", err)}
		}
	}

	var call string
	switch fc.Mode {
	case FileRead:
		call = fmt.Sprintf("%s(%q)", oracle.Name, path)
	default:
		call = fmt.Sprintf("%s(%q, %q)", oracle.Name, fc.Input, path)
	}

	v, err := safeEval(i, call)
	if err != nil {
		return Verdict{Status: StatusError, Function: oracle.Name,
			Details: fmt.Sprintf("Runtime error: %v", err)}
	}

	switch fc.Mode {
	case FileWrite:
		content, err := os.ReadFile(path)
		if err != nil {
			return Verdict{Status: StatusFail, Function: oracle.Name,
				Details: fmt.Sprintf("File not written: %v", err)}
		}
		got := strings.TrimSpace(string(content))
		status := StatusFail
		if got == fc.Input {
			status = StatusPass
		}
		return Verdict{Status: status, Function: oracle.Name,
			Details: fmt.Sprintf("File write/read got '%s'", got)}

	case FileRead:
		got := strings.TrimSpace(sprintValue(v))
		status := StatusFail
		if got == fc.Seed {
			status = StatusPass
		}
		return Verdict{Status: status, Function: oracle.Name,
			Details: fmt.Sprintf("File read got '%s'", got)}

	default: // FileAppend
		content, err := os.ReadFile(path)
		if err != nil {
			return Verdict{Status: StatusFail, Function: oracle.Name,
				Details: fmt.Sprintf("File not written: %v", err)}
		}
		got := strings.TrimSpace(string(content))
		status := StatusFail
		if strings.HasSuffix(got, fc.Input) {
			status = StatusPass
		}
		return Verdict{Status: status, Function: oracle.Name,
			Details: fmt.Sprintf("File append got '%s'", got)}
	}
}

// sprintValue normalizes an interpreter result for comparison.
func sprintValue(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}
	if !v.CanInterface() {
		return fmt.Sprint(v)
	}
	return fmt.Sprint(v.Interface())
}
