package critic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"clarifycoder/internal/generate"
)

// Generated code runs under the yaegi interpreter instead of a compiled
// binary: no build step that can hang, no dependency resolution, and a
// fresh interpreter per evaluation so nothing leaks between prompts. The
// interpreter itself runs in a re-executed child process (see runner.go)
// bounded by a wall-clock timeout, so code the interpreter cannot survive
// never takes the host down.
//
// Restrictions: only whitelisted stdlib imports. The whitelist still
// includes "os" because the file-I/O oracles need it; confining that access
// to the per-evaluation scratch directory is enforced by convention only,
// which remains the known hardening gap of this sandbox.

// errExhausted marks a timeout, panic, or dead child during invocation,
// classified as a plain test failure rather than an execution error.
var errExhausted = errors.New("resource exhaustion")

// Sandbox evaluates code by interpreting it and invoking oracle callables.
type Sandbox struct {
	oracles     []Oracle
	allowedPkgs map[string]bool
	timeout     time.Duration
}

// SandboxOption configures a Sandbox.
type SandboxOption func(*Sandbox)

// WithOracles replaces the oracle table. Tests substitute smaller ones.
func WithOracles(oracles []Oracle) SandboxOption {
	return func(s *Sandbox) { s.oracles = oracles }
}

// WithInvokeTimeout bounds each evaluation's runner process.
func WithInvokeTimeout(d time.Duration) SandboxOption {
	return func(s *Sandbox) { s.timeout = d }
}

// NewSandbox creates a sandbox critic over the default oracle table.
func NewSandbox(opts ...SandboxOption) *Sandbox {
	s := &Sandbox{
		oracles: DefaultOracles(),
		timeout: 5 * time.Second,
		allowedPkgs: map[string]bool{
			"strings":       true,
			"strconv":       true,
			"fmt":           true,
			"math":          true,
			"regexp":        true,
			"sort":          true,
			"bytes":         true,
			"unicode":       true,
			"errors":        true,
			"time":          true,
			"os":            true,
			"encoding/json": true,
			"database/sql":  true,
			"net/http":      true,
			"net/url":       true,
			"path/filepath": true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate judges one code artifact. Fences are stripped first so marker
// artifacts short-circuit even when the generator fenced them; everything
// else is interpreted in a runner child, matched against the oracle table,
// and falls back to keyword classification when no oracle applies.
func (s *Sandbox) Evaluate(ctx context.Context, code string, _ string) (Verdict, error) {
	if err := validateCode(code); err != nil {
		return Verdict{}, err
	}

	clean := stripFences(code)
	if strings.HasPrefix(clean, generate.StubMarker) {
		return Verdict{Status: StatusUnsupported, Details: "Non-Go language requested"}, nil
	}
	if strings.HasPrefix(clean, generate.NoTemplateMarker) {
		return Verdict{Status: StatusInvalid, Details: "No usable code generated"}, nil
	}

	if err := s.validateImports(clean); err != nil {
		return s.keywordFallback(clean, fmt.Sprintf("Execution failed: %v", err)), nil
	}

	res, err := s.runChild(ctx, clean)
	if errors.Is(err, errExhausted) {
		return Verdict{Status: StatusFail, Details: fmt.Sprintf("Resource exhaustion: %v", err)}, nil
	}
	if err != nil {
		return Verdict{}, err
	}

	switch res.Outcome {
	case outcomeVerdict:
		return res.Verdict, nil
	case outcomeEvalError:
		return s.keywordFallback(clean, fmt.Sprintf("Execution failed: %s", res.Err)), nil
	default:
		return s.keywordFallback(clean, "Function not in supported list"), nil
	}
}

// runChild re-executes the current binary as an oracle runner and feeds it
// the evaluation over stdin. A child that overruns the deadline, dies on a
// fatal runtime error, or replies with garbage counts as exhausted; only a
// failure to launch at all surfaces as an error.
func (s *Sandbox) runChild(ctx context.Context, code string) (runnerResult, error) {
	exe, err := os.Executable()
	if err != nil {
		return runnerResult{}, fmt.Errorf("failed to locate runner executable: %w", err)
	}
	payload, err := json.Marshal(runnerRequest{Code: code, Oracles: s.oracles})
	if err != nil {
		return runnerResult{}, fmt.Errorf("failed to encode runner request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exe)
	cmd.Env = append(os.Environ(), runnerEnv+"=1")
	cmd.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		}
		return runnerResult{}, fmt.Errorf("%w: %v", errExhausted, err)
	}

	var res runnerResult
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		return runnerResult{}, fmt.Errorf("%w: unreadable runner reply: %v", errExhausted, err)
	}
	return res, nil
}

// validateImports rejects code importing packages outside the whitelist
// before it ever reaches the interpreter.
func (s *Sandbox) validateImports(code string) error {
	var imports []string
	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import (") {
			inBlock = true
			continue
		}
		if inBlock {
			if strings.HasPrefix(trimmed, ")") {
				inBlock = false
				continue
			}
			if pkg := strings.Trim(trimmed, `"`); pkg != "" {
				imports = append(imports, pkg)
			}
			continue
		}
		if strings.HasPrefix(trimmed, "import ") {
			pkg := strings.TrimPrefix(trimmed, "import ")
			imports = append(imports, strings.Trim(pkg, `"`))
		}
	}

	var forbidden []string
	for _, pkg := range imports {
		if !s.allowedPkgs[pkg] {
			forbidden = append(forbidden, pkg)
		}
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports: %v", forbidden)
	}
	return nil
}

// wrapCode wraps bare declarations in a main package if needed.
func wrapCode(code string) string {
	if strings.Contains(code, "package main") {
		return code
	}
	return "package main\n\n" + code
}

// Keyword tables for the ordered fallback classifier.
var (
	regexKeywords   = []string{"regexp.MustCompile", "regexp.Compile", "FindAllString", "MatchString", "ReplaceAllString"}
	networkKeywords = []string{"http.Get", "http.Post", "net/http", "url.Parse"}
	dbKeywords      = []string{"database/sql", "sql.Open", "SELECT", "INSERT", "UPDATE", "DELETE"}
	systemKeywords  = []string{"os.", "time.", "encoding/json", "filepath."}
	unsupportedLibs = []string{"tensorflow", "opengl", "torch"}
)

// keywordFallback classifies code that defined no oracle callable or failed
// to load. Recognized categories pass on keyword evidence alone; everything
// else is unsupported, with the original reason preserved.
func (s *Sandbox) keywordFallback(code, reason string) Verdict {
	if containsAnyOf(code, regexKeywords) {
		return Verdict{Status: StatusPass, Function: "regex", Details: "Regex pattern usage detected"}
	}
	if containsAnyOf(code, networkKeywords) {
		return Verdict{Status: StatusPass, Function: "networking", Details: "Networking code detected"}
	}
	if containsAnyOf(code, dbKeywords) {
		return Verdict{Status: StatusPass, Function: "database", Details: "Database code detected"}
	}
	if containsAnyOf(code, systemKeywords) {
		return Verdict{Status: StatusPass, Function: "system", Details: "System utility code detected"}
	}

	lower := strings.ToLower(code)
	for _, lib := range unsupportedLibs {
		if strings.Contains(lower, lib) {
			return Verdict{Status: StatusUnsupported, Details: "Unsupported library usage"}
		}
	}

	return Verdict{Status: StatusUnsupported, Details: reason}
}

func containsAnyOf(code string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(code, kw) {
			return true
		}
	}
	return false
}
