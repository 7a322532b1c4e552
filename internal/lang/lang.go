// Package lang detects requests for target languages the system does not
// support. Code generation is Go-only; prompts naming another language get a
// single clarifying question (and later a stub artifact) instead of code.
package lang

import (
	"regexp"
	"strings"
)

// Question is the single clarification raised for a non-Go language request.
const Question = "Currently only Go is supported. Do you want me to proceed in Go?"

// DefaultLanguages lists the non-Go language names checked for.
func DefaultLanguages() []string {
	return []string{
		"python", "java", "javascript", "typescript",
		"c++", "c#", "ruby", "rust",
	}
}

// Guard matches prompts that name a non-supported target language.
type Guard struct {
	patterns []*regexp.Regexp
}

// NewGuard compiles word-boundary patterns for the given language names.
func NewGuard(languages []string) *Guard {
	g := &Guard{}
	for _, name := range languages {
		g.patterns = append(g.patterns, compileLanguage(name))
	}
	return g
}

// DefaultGuard returns a guard over DefaultLanguages.
func DefaultGuard() *Guard {
	return NewGuard(DefaultLanguages())
}

// Detect reports whether the prompt names a non-supported language.
func (g *Guard) Detect(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, p := range g.patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// compileLanguage builds a whole-word pattern. Names ending in a symbol
// ("c++", "c#") cannot take a trailing \b, so only the leading boundary is
// enforced for them.
func compileLanguage(name string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.ToLower(name))
	last := name[len(name)-1]
	if (last >= 'a' && last <= 'z') || (last >= '0' && last <= '9') {
		return regexp.MustCompile(`\b` + quoted + `\b`)
	}
	return regexp.MustCompile(`\b` + quoted)
}
