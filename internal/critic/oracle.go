package critic

// Pair is one mechanical test case: Args is the Go argument list passed to
// the callable, Want the fmt.Sprint-normalized expected result.
type Pair struct {
	Args string
	Want string
}

// FileMode selects which side-effect check a file-I/O oracle performs.
type FileMode int

const (
	FileWrite  FileMode = iota // callable writes Input to a file
	FileRead                   // callable reads a staged file back
	FileAppend                 // callable appends Input to a staged file
)

// FileCase describes a file-I/O oracle: the scratch file staged before
// invocation and the content check performed after. Scratch files live in a
// directory created per evaluation, so verdicts never depend on leftover
// state from another prompt.
type FileCase struct {
	Mode     FileMode
	Input    string // data argument, where the mode takes one
	FileName string // scratch file base name
	Seed     string // content staged before invocation
}

// Oracle judges one supported callable by name.
type Oracle struct {
	Name  string
	Pairs []Pair
	File  *FileCase
}

// DefaultOracles returns the built-in oracle table, one entry per supported
// template.
func DefaultOracles() []Oracle {
	return []Oracle{
		// Math and algorithms
		{Name: "factorial", Pairs: []Pair{{"5", "120"}, {"0", "1"}}},
		{Name: "fibonacci", Pairs: []Pair{{"5", "[0 1 1 2 3]"}, {"1", "[0]"}}},
		{Name: "is_prime", Pairs: []Pair{{"7", "true"}, {"8", "false"}}},
		{Name: "gcd", Pairs: []Pair{{"54, 24", "6"}, {"20, 8", "4"}}},
		{Name: "lcm", Pairs: []Pair{{"4, 6", "12"}, {"21, 6", "42"}}},
		{Name: "power", Pairs: []Pair{{"2, 3", "8"}, {"5, 0", "1"}}},

		// Strings
		{Name: "reverse_string", Pairs: []Pair{{`"hello"`, "olleh"}, {`"abc"`, "cba"}}},
		{Name: "is_palindrome", Pairs: []Pair{{`"racecar"`, "true"}, {`"hello"`, "false"}}},
		{Name: "word_count", Pairs: []Pair{{`"hello world"`, "2"}, {`"one two three"`, "3"}}},

		// File handling
		{Name: "save_results", File: &FileCase{Mode: FileWrite, Input: "hello", FileName: "test_output.txt"}},
		{Name: "read_file", File: &FileCase{Mode: FileRead, FileName: "test_input.txt", Seed: "sample text"}},
		{Name: "append_to_file", File: &FileCase{Mode: FileAppend, Input: "world", FileName: "append_test.txt", Seed: "hello "}},

		// Data structures
		{Name: "sort_list", Pairs: []Pair{{"[]int{3, 1, 2}", "[1 2 3]"}, {"[]int{5, 4}", "[4 5]"}}},
		{Name: "stack_push", Pairs: []Pair{{"[]int{1, 2}, 3", "[1 2 3]"}}},
		{Name: "stack_pop", Pairs: []Pair{{"[]int{1, 2, 3}", "3"}, {"[]int{10}", "10"}}},
		{Name: "merge_dicts", Pairs: []Pair{{`map[string]int{"a": 1}, map[string]int{"b": 2}`, "map[a:1 b:2]"}}},
	}
}
