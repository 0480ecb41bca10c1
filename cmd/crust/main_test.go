package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sysidos/crust/pkg/parser"
)

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	for _, flagName := range []string{"dparse", "dtokens", "max-depth"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag --%s to exist", flagName)
		}
	}
}

func TestDParseFlag(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.c")
	content := `int main() { return 0; }`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dparse", testFile})
	err := cmd.Execute()

	if err != nil {
		t.Errorf("expected no error for -dparse, got %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "FunctionDefinition") {
		t.Errorf("expected output to contain 'FunctionDefinition', got %q", output)
	}
	if !strings.Contains(output, "JumpStatement(return)") {
		t.Errorf("expected output to contain 'JumpStatement(return)', got %q", output)
	}
}

func TestDParseCreatesOutputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.c")
	content := `int main() { return 42; }`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	expectedOutputFile := filepath.Join(tmpDir, "test.parsed.txt")

	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dparse", testFile})
	err := cmd.Execute()

	if err != nil {
		t.Errorf("expected no error for -dparse, got %v", err)
	}

	fileContent, err := os.ReadFile(expectedOutputFile)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if out.String() != string(fileContent) {
		t.Errorf("output file content doesn't match stdout\nStdout:\n%s\nFile:\n%s", out.String(), string(fileContent))
	}
	if !strings.Contains(string(fileContent), "IntConstant(42)") {
		t.Errorf("expected output file to contain 'IntConstant(42)'")
	}
}

func TestDParseFlagFileNotFound(t *testing.T) {
	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dparse", "nonexistent.c"})
	err := cmd.Execute()

	if err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}

func TestDTokensFlag(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.c")
	if err := os.WriteFile(testFile, []byte("int x;"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dtokens", testFile})
	err := cmd.Execute()

	if err != nil {
		t.Errorf("expected no error for -dtokens, got %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 token lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "1:1\t") {
		t.Errorf("expected first token at 1:1, got %q", lines[0])
	}
}

func TestParseErrorIsReported(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "bad.c")
	if err := os.WriteFile(testFile, []byte("typedef int myint;"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{testFile})
	err := cmd.Execute()

	if err == nil {
		t.Error("expected error for a typedef, got nil")
	}
	if !strings.Contains(errOut.String(), "typedef") {
		t.Errorf("expected stderr to mention typedef, got %q", errOut.String())
	}
}

func TestParsedOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"test.c", "test.parsed.txt"},
		{"path/to/file.c", "path/to/file.parsed.txt"},
		{"/absolute/path.c", "/absolute/path.parsed.txt"},
		{"no_extension", "no_extension.parsed.txt"},
	}

	for _, tc := range tests {
		result := parsedOutputFilename(tc.input)
		if result != tc.expected {
			t.Errorf("parsedOutputFilename(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func resetFlags() {
	dParse = false
	dTokens = false
	maxDepth = parser.DefaultMaxDepth
}

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "single-dash dparse",
			input:    []string{"-dparse", "test.c"},
			expected: []string{"--dparse", "test.c"},
		},
		{
			name:     "double-dash dparse unchanged",
			input:    []string{"--dparse", "test.c"},
			expected: []string{"--dparse", "test.c"},
		},
		{
			name:     "single-dash dtokens",
			input:    []string{"-dtokens", "test.c"},
			expected: []string{"--dtokens", "test.c"},
		},
		{
			name:     "mixed flags",
			input:    []string{"test.c", "-dparse", "-dtokens"},
			expected: []string{"test.c", "--dparse", "--dtokens"},
		},
		{
			name:     "no flags",
			input:    []string{"test.c"},
			expected: []string{"test.c"},
		},
		{
			name:     "other flags unchanged",
			input:    []string{"--max-depth", "64", "test.c"},
			expected: []string{"--max-depth", "64", "test.c"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := normalizeFlags(tc.input)
			if len(result) != len(tc.expected) {
				t.Errorf("normalizeFlags(%v) = %v, want %v", tc.input, result, tc.expected)
				return
			}
			for i := range result {
				if result[i] != tc.expected[i] {
					t.Errorf("normalizeFlags(%v) = %v, want %v", tc.input, result, tc.expected)
					return
				}
			}
		})
	}
}
