package generate

import (
	"context"
	"strings"

	"clarifycoder/internal/lang"
)

// TemplateGenerator matches trigger keywords against a fixed template table.
type TemplateGenerator struct {
	templates []Template
	byKey     map[string]string
	combos    []comboRule
	singles   []singleRule
	guard     *lang.Guard
}

// NewTemplate creates a template generator over the default tables.
func NewTemplate() *TemplateGenerator {
	return NewTemplateWithTable(DefaultTemplates(), lang.DefaultGuard())
}

// NewTemplateWithTable creates a template generator with an injected table.
func NewTemplateWithTable(templates []Template, guard *lang.Guard) *TemplateGenerator {
	byKey := make(map[string]string, len(templates))
	for _, t := range templates {
		byKey[t.Key] = t.Code
	}
	return &TemplateGenerator{
		templates: templates,
		byKey:     byKey,
		combos:    defaultComboRules(),
		singles:   defaultSingleRules(),
		guard:     guard,
	}
}

// Synthesize returns the first template whose guard matches the lowercased
// prompt. Combo rules take precedence, then the single-keyword rules, then a
// plain scan of the template table in order.
func (g *TemplateGenerator) Synthesize(_ context.Context, augmentedPrompt string) (Artifact, error) {
	if err := validatePrompt(augmentedPrompt); err != nil {
		return Artifact{}, err
	}

	lower := strings.ToLower(augmentedPrompt)

	if g.guard.Detect(lower) {
		return Artifact{Source: StubMarker}, nil
	}

	for _, combo := range g.combos {
		if containsAll(lower, combo.keywords) {
			if code, ok := g.byKey[combo.key]; ok {
				return Artifact{Source: code}, nil
			}
		}
	}

	for _, rule := range g.singles {
		if containsAnyKeyword(lower, rule.keywords) {
			if code, ok := g.byKey[rule.key]; ok {
				return Artifact{Source: code}, nil
			}
		}
	}

	for _, t := range g.templates {
		if strings.Contains(lower, t.Key) {
			return Artifact{Source: t.Code}, nil
		}
	}

	return Artifact{Source: NoTemplateMarker}, nil
}

func containsAll(prompt string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(prompt, kw) {
			return false
		}
	}
	return true
}

func containsAnyKeyword(prompt string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(prompt, kw) {
			return true
		}
	}
	return false
}
