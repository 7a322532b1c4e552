package clarify

import (
	"context"
	"regexp"
	"strings"

	"clarifycoder/internal/lang"
)

// RuleBased scans prompts against a fixed trigger table. A dedicated language
// check runs first: a prompt naming a non-supported language yields exactly
// one question about language support and suppresses all other rules.
type RuleBased struct {
	rules []Rule
	guard *lang.Guard
}

// NewRuleBased creates a rule-based clarifier over the default tables.
func NewRuleBased() *RuleBased {
	return NewRuleBasedWithRules(DefaultRules(), lang.DefaultGuard())
}

// NewRuleBasedWithRules creates a rule-based clarifier with injected tables.
// Tests substitute smaller ones.
func NewRuleBasedWithRules(rules []Rule, guard *lang.Guard) *RuleBased {
	return &RuleBased{rules: rules, guard: guard}
}

// Detect scans the prompt and returns the clarification result.
func (c *RuleBased) Detect(_ context.Context, prompt string) (Result, error) {
	if err := validatePrompt(prompt); err != nil {
		return Result{}, err
	}

	lower := strings.ToLower(prompt)

	if c.guard.Detect(lower) {
		return resultFor(prompt, []string{lang.Question}), nil
	}

	var questions []string
	for _, rule := range c.rules {
		if !strings.Contains(lower, rule.Trigger) {
			continue
		}
		if rule.Suppress != nil && rule.Suppress(lower) {
			continue
		}
		questions = append(questions, rule.Question)
	}

	return resultFor(prompt, questions), nil
}

var (
	numberRe = regexp.MustCompile(`\d+`)
	emailRe  = regexp.MustCompile(`[^@\s]+@[^@\s]+\.[^@\s]+`)
	phoneRe  = regexp.MustCompile(`\d{3}[-\s]?\d{3}[-\s]?\d{4}`)
)

func hasDigit(p string) bool {
	return strings.ContainsAny(p, "0123456789")
}

func hasTwoNumbers(p string) bool {
	return len(numberRe.FindAllString(p, -1)) >= 2
}

func containsAny(p string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(p, s) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in trigger table. Order is the scan order;
// a prompt can legitimately raise several independent questions.
func DefaultRules() []Rule {
	return []Rule{
		// File I/O
		{Key: "save_file", Trigger: "save file", Question: "What file format should I use (txt, csv, json)?"},
		{Key: "read_file", Trigger: "read file", Question: "From which file and in what format?"},
		{Key: "append_file", Trigger: "append file", Question: "Should I append or overwrite the file?"},

		// Sorting / data structures
		{Key: "sort", Trigger: "sort", Question: "What type of data do you want to sort (slice, map, file lines)?"},
		{Key: "find_max", Trigger: "find max", Question: "Find maximum in what (slice, map, matrix)?",
			Suppress: func(p string) bool { return containsAny(p, "list", "slice", "map", "array", "matrix") }},
		{Key: "traverse_graph", Trigger: "traverse graph", Question: "Which algorithm should I use (BFS, DFS)?"},
		{Key: "depth", Trigger: "depth", Question: "Do you want maximum depth, minimum depth, or all levels?"},

		// Math
		{Key: "factorial", Trigger: "factorial", Question: "Should I implement factorial iteratively or recursively?",
			Suppress: hasDigit},
		{Key: "fibonacci", Trigger: "fibonacci", Question: "Do you want the first n terms or terms up to a maximum value?",
			Suppress: hasDigit},
		{Key: "prime", Trigger: "prime", Question: "Check primality for a single number or a range of numbers?",
			Suppress: hasDigit},
		{Key: "gcd", Trigger: "gcd", Question: "Find the gcd of how many numbers?",
			Suppress: hasTwoNumbers},
		{Key: "lcm", Trigger: "lcm", Question: "Should I use the gcd-based formula or brute force?",
			Suppress: hasTwoNumbers},
		{Key: "power", Trigger: "power", Question: "Do you want integer exponentiation or floating-point power?",
			Suppress: func(p string) bool { return containsAny(p, "of", "^") }},

		// ML
		{Key: "classifier", Trigger: "classifier", Question: "Which classification algorithm should I use (SVM, random forest, logistic regression)?"},

		// Printing / results
		{Key: "print_results", Trigger: "print results", Question: "Should I print all results or just summary statistics?"},

		// Strings
		{Key: "reverse", Trigger: "reverse", Question: "Do you want to reverse characters or words?"},
		{Key: "palindrome", Trigger: "palindrome", Question: "Should I ignore case and spaces when checking for a palindrome?"},
		{Key: "frequency", Trigger: "frequency", Question: "Do you want word frequency or character frequency?"},
		{Key: "substring", Trigger: "substring", Question: "Which substring should I search for?"},
		{Key: "replace", Trigger: "replace", Question: "Which word should I replace, and with what?",
			Suppress: func(p string) bool { return strings.Contains(p, "with") }},
		{Key: "anagram", Trigger: "anagram", Question: "Which two words should I compare for being anagrams?"},

		// Networking
		{Key: "network", Trigger: "request", Question: "Do you want a GET or POST request? What URL and payload?"},
		{Key: "headers", Trigger: "header", Question: "Should I include authentication or custom headers?"},
		{Key: "timeout", Trigger: "timeout", Question: "What timeout duration should I use for the request?"},

		// Database / SQL
		{Key: "query", Trigger: "query", Question: "Which database and table should I use?"},
		{Key: "create_table", Trigger: "create table", Question: "What schema should the new table have?"},
		{Key: "drop_table", Trigger: "drop table", Question: "Do you want a safe check before dropping the table?"},

		// Regex
		{Key: "extract_numbers", Trigger: "extract numbers", Question: "Extract numbers from where (string, file)?",
			Suppress: hasDigit},
		{Key: "email", Trigger: "email", Question: "Should I use a strict or a simple pattern for email validation?",
			Suppress: func(p string) bool { return emailRe.MatchString(p) }},
		{Key: "phone", Trigger: "phone", Question: "What phone number format should I expect?",
			Suppress: func(p string) bool { return phoneRe.MatchString(p) }},
		{Key: "hashtag", Trigger: "hashtag", Question: "Do you want to extract hashtags with the '#' symbol or without it?",
			Suppress: func(p string) bool { return strings.Contains(p, "#") }},

		// System utilities
		{Key: "time", Trigger: "time", Question: "Do you want the current system time, execution time, or a formatted date?",
			Suppress: func(p string) bool { return containsAny(p, "yyyy", "hh", "mm", "format") }},
		{Key: "list_files", Trigger: "list files", Question: "From which directory should I list files?",
			Suppress: func(p string) bool { return containsAny(p, "current", "directory", ".", "folder") }},
		{Key: "env", Trigger: "env", Question: "Which environment variable should I fetch?",
			Suppress: func(p string) bool { return containsAny(p, "path", "home", "gopath") }},
		{Key: "sleep", Trigger: "sleep", Question: "How many seconds should I pause?",
			Suppress: hasDigit},
		{Key: "directory", Trigger: "directory", Question: "Do you want the current working directory or to change it?",
			Suppress: func(p string) bool { return containsAny(p, "current", "working", "cwd") }},

		// Stress / unsupported
		{Key: "cube", Trigger: "cube", Question: "Do you mean a 2D ASCII cube or 3D OpenGL rendering?"},
		{Key: "game", Trigger: "game", Question: "Which game do you want to build (chess, tic-tac-toe, etc.)?",
			Suppress: func(p string) bool { return containsAny(p, "chess", "tic-tac-toe", "sudoku", "snake") }},
		{Key: "recursion", Trigger: "recursion", Question: "How deep should the recursion go?"},
		{Key: "big_list", Trigger: "big list", Question: "How many elements do you want in the list?"},
		{Key: "tensorflow", Trigger: "tensorflow", Question: "Are you sure you want to use TensorFlow here? (unsupported)"},
		{Key: "opengl", Trigger: "opengl", Question: "Are you sure you want to use OpenGL here? (unsupported)"},
	}
}
