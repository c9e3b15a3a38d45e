package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the command tree with a config that disables color and
// history, and returns what was written to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ulox.toml")
	cfg := "color = false\nhistory_file = \"none\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stdout string
		stderr string
		fail   bool
	}{
		{"arithmetic", []string{"eval", "1 + 2 * 3"}, "7\n", "", false},
		{"joined args", []string{"eval", "8", "-", "3", "-", "2"}, "3\n", "", false},
		{"string", []string{"eval", `"a" + "b"`}, "ab\n", "", false},
		{"leading minus", []string{"eval", "-1 + 2"}, "1\n", "", false},
		{"negated group", []string{"eval", "-(3)"}, "-3\n", "", false},
		{"leading minus split", []string{"eval", "-", "2", "*", "2"}, "-4\n", "", false},
		{"double dash", []string{"eval", "--", "-2 * 2"}, "-4\n", "", false},
		{"parse error", []string{"eval", "(1 + 2"}, "", "[1:7] Error: Expecting to find ')' found '' instead\n", true},
		{"runtime error", []string{"eval", `-"a"`}, "", "[1:1] Error: Unary operator '-' expects a number, instead got: 'String(\"a\")'\n", true},
		{"scan error", []string{"eval", `"unterminated`}, "", "[1:1] Error: Unterminated string.\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, "", tt.args...)
			if tt.fail {
				if !errors.Is(err, errReported) {
					t.Fatalf("err = %v, want errReported", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
			if stderr != tt.stderr {
				t.Errorf("stderr = %q, want %q", stderr, tt.stderr)
			}
		})
	}
}

func TestREPLBuffered(t *testing.T) {
	input := "1 + 2\n\n(1 +\n 2) * 3\n\"a\" + \"b\"\n"
	stdout, stderr, err := execute(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v (stderr %q)", err, stderr)
	}
	if want := "3\n9\nab\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestREPLBufferedErrors(t *testing.T) {
	stdout, stderr, err := execute(t, "1 +\n2\nnil - 1\n(4\n", "repl")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if stdout != "2\n" {
		t.Errorf("stdout = %q", stdout)
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) != 3 {
		t.Fatalf("stderr lines = %q", lines)
	}
	if !strings.Contains(lines[0], "Unexpected token ''") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Binary operator '-' expects two numbers") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Expecting to find ')'") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestREPLPrintAST(t *testing.T) {
	cfgPath := writeFile(t, "ulox.yaml", "color: false\nprint_ast: true\n")

	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("-12 * (4.5)\n"))
	root.SetArgs([]string{"--config", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "(* (- 12) (grouping 4.5))\n-54\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1 + 2", false},
		{"(1 + 2", true},
		{"((1)", true},
		{"(1))", false},
		{`"open`, true},
		{"1 /* open", true},
		{"1 # 2", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := incomplete(tt.src); got != tt.want {
			t.Errorf("incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestRunCommand(t *testing.T) {
	a := writeFile(t, "a.lox", "1 + 2")
	b := writeFile(t, "b.lox", "(8 - 3) * 2")

	stdout, _, err := execute(t, "", "run", "-j", "2", a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := a + ": 3\n" + b + ": 10\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	stdout, _, err = execute(t, "", "run", a)
	if err != nil || stdout != "3\n" {
		t.Errorf("single file: stdout = %q, err = %v", stdout, err)
	}
}

func TestRunCommandErrors(t *testing.T) {
	good := writeFile(t, "good.lox", "true")
	bad := writeFile(t, "bad.lox", "1 +\n  nil")

	stdout, stderr, err := execute(t, "", "run", good, bad)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if stdout != good+": true\n" {
		t.Errorf("stdout = %q", stdout)
	}
	want := bad + ": [1:3] Error: Binary operator '+' expects two numbers or two strings, instead got: left='Number(1)' right='Nil'\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}

	_, _, err = execute(t, "", "run", filepath.Join(t.TempDir(), "missing.lox"))
	if err == nil || errors.Is(err, errReported) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestTokensCommand(t *testing.T) {
	stdout, _, err := execute(t, "1 + \"a\"", "tokens")
	if err != nil {
		t.Fatal(err)
	}
	want := "1:1      number     \"1\"\n" +
		"1:3      +          \"+\"\n" +
		"1:5      string     \"\\\"a\\\"\"\n" +
		"1:8      EOF        \"\"\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}

	_, stderr, err := execute(t, "1 @", "tokens", "-")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if stderr != "<stdin>: [1:3] Error: Unexpected character '@'\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestASTCommand(t *testing.T) {
	path := writeFile(t, "expr.lox", "8 - 3 - 2")

	stdout, _, err := execute(t, "", "ast", path)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "(- (- 8 3) 2)\n" {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, _, err = execute(t, "", "ast", "--parens", path)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "((8 - 3) - 2)\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "ulox v"+Version+"\n") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestBadConfig(t *testing.T) {
	cfgPath := writeFile(t, "ulox.toml", "workers = -2\n")

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "eval", "1"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "workers must not be negative") {
		t.Errorf("err = %v", err)
	}
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "", "-v", "eval", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "level=DEBUG") || !strings.Contains(stderr, "msg=evaluated") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestEvalCommandFlags(t *testing.T) {
	cfgPath := writeFile(t, "ulox.toml", "color = false\n")

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"eval", "--config=" + cfgPath, "-v", "-8 - 3"})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "-11\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "level=DEBUG") {
		t.Errorf("-v after eval did not enable debug logging: %q", stderr.String())
	}
}

func TestEvalCommandUsage(t *testing.T) {
	_, _, err := execute(t, "", "eval")
	if err == nil || !strings.Contains(err.Error(), "missing expression") {
		t.Errorf("no expression: err = %v", err)
	}

	_, _, err = execute(t, "", "eval", "--config")
	if err == nil || !strings.Contains(err.Error(), "flag needs an argument") {
		t.Errorf("dangling --config: err = %v", err)
	}

	stdout, _, err := execute(t, "", "eval", "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	if !strings.Contains(stdout, "Evaluate the arguments") {
		t.Errorf("help output = %q", stdout)
	}
}
