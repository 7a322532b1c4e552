package generate

// Template couples a trigger keyword with a fixed Go snippet. Snippets are
// plain declarations; the evaluation sandbox wraps them in a main package.
type Template struct {
	Key  string
	Code string
}

// comboRule matches when every keyword is present. Combo rules run before
// single-keyword lookup so "save"+"file" beats a looser "save" match.
type comboRule struct {
	keywords []string
	key      string
}

func defaultComboRules() []comboRule {
	return []comboRule{
		{[]string{"save", "file"}, "save file"},
		{[]string{"push", "stack"}, "stack push"},
		{[]string{"pop", "stack"}, "stack pop"},
		{[]string{"merge", "dict"}, "merge dict"},
		{[]string{"merge", "map"}, "merge dict"},
		{[]string{"read", "file"}, "read file"},
		{[]string{"append", "file"}, "append file"},
		{[]string{"word", "count"}, "word count"},
		{[]string{"select", "sql"}, "sql select"},
		{[]string{"insert", "sql"}, "sql insert"},
	}
}

// singleRule maps any of its keywords to a template key.
type singleRule struct {
	keywords []string
	key      string
}

func defaultSingleRules() []singleRule {
	return []singleRule{
		{[]string{"palindrome"}, "palindrome"},
		{[]string{"regex", "extract number"}, "regex extract"},
		{[]string{"email"}, "validate email"},
		{[]string{"http get", "fetch"}, "http get"},
		{[]string{"http post", "send post"}, "http post"},
		{[]string{"time"}, "current time"},
		{[]string{"list files", "directory"}, "list files"},
		{[]string{"sleep", "pause"}, "sleep"},
		{[]string{"opengl"}, "opengl"},
		{[]string{"tensorflow"}, "tensorflow"},
	}
}

// DefaultTemplates returns the built-in template table. Same clarified
// prompt, same code: there is no randomness anywhere in this path.
func DefaultTemplates() []Template {
	return []Template{
		{"factorial", `func factorial(n int) int {
	if n == 0 || n == 1 {
		return 1
	}
	return n * factorial(n-1)
}`},
		{"save file", `import "os"

func save_results(data string, filename string) error {
	return os.WriteFile(filename, []byte(data), 0644)
}`},
		{"sort", `import "sort"

func sort_list(items []int) []int {
	out := append([]int(nil), items...)
	sort.Ints(out)
	return out
}`},
		{"classifier", `func train_classifier(features [][]float64, labels []int) string {
	// Placeholder for classifier training.
	return "untrained"
}`},
		{"fibonacci", `func fibonacci(n int) []int {
	if n <= 0 {
		return []int{}
	}
	seq := []int{0, 1}
	for i := 2; i < n; i++ {
		seq = append(seq, seq[i-1]+seq[i-2])
	}
	if n < len(seq) {
		seq = seq[:n]
	}
	return seq
}`},
		{"prime", `func is_prime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}`},
		{"reverse", `func reverse_string(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}`},
		{"gcd", `func gcd(a int, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}`},
		{"lcm", `func gcd(a int, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a int, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p < 0 {
		p = -p
	}
	return p / gcd(a, b)
}`},
		{"power", `func power(base int, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}`},
		{"stack push", `func stack_push(stack []int, item int) []int {
	return append(stack, item)
}`},
		{"stack pop", `func stack_pop(stack []int) int {
	if len(stack) == 0 {
		return 0
	}
	return stack[len(stack)-1]
}`},
		{"merge dict", `func merge_dicts(d1 map[string]int, d2 map[string]int) map[string]int {
	merged := map[string]int{}
	for k, v := range d1 {
		merged[k] = v
	}
	for k, v := range d2 {
		merged[k] = v
	}
	return merged
}`},
		{"read file", `import "os"

func read_file(filename string) string {
	data, err := os.ReadFile(filename)
	if err != nil {
		return ""
	}
	return string(data)
}`},
		{"append file", `import "os"

func append_to_file(data string, filename string) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(data)
	return err
}`},
		{"palindrome", `func is_palindrome(s string) bool {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}`},
		{"word count", `import "strings"

func word_count(s string) int {
	return len(strings.Fields(s))
}`},
		{"regex extract", `import "regexp"

func extract_numbers(text string) []string {
	return regexp.MustCompile("[0-9]+").FindAllString(text, -1)
}`},
		{"validate email", `import "regexp"

func validate_email(s string) bool {
	return regexp.MustCompile("^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$").MatchString(s)
}`},
		{"http get", `import "net/http"

func fetch_page(url string) int {
	resp, err := http.Get(url)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	return resp.StatusCode
}`},
		{"http post", `import (
	"bytes"
	"net/http"
)

func send_post(url string, payload []byte) int {
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	return resp.StatusCode
}`},
		{"sql select", `import "database/sql"

func run_query(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}`},
		{"sql insert", `import "database/sql"

func insert_user(db *sql.DB, userID int, name string) error {
	_, err := db.Exec("INSERT INTO users VALUES (?, ?)", userID, name)
	return err
}`},
		{"current time", `import "time"

func current_time() string {
	return time.Now().Format("2006-01-02")
}`},
		{"list files", `import "os"

func list_files() []string {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}`},
		{"sleep", `import "time"

func pause(seconds int) bool {
	time.Sleep(time.Duration(seconds) * time.Second)
	return true
}`},
		{"opengl", `// OpenGL tasks are not supported`},
		{"tensorflow", `// TensorFlow tasks are not supported`},
	}
}
