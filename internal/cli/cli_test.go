package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/exampro/internal/core"
)

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestHelp(t *testing.T) {
	code, out, _ := run(t, "", "-h")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out, "Usage:") || !strings.Contains(out, "-format") {
		t.Fatalf("expected usage with flags, got %q", out)
	}
}

func TestTemplate(t *testing.T) {
	code, out, _ := run(t, "", "-template")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if strings.TrimSpace(out) != core.SampleCSV {
		t.Fatalf("template output mismatch: %q", out)
	}
}

func TestValidStdinJSON(t *testing.T) {
	code, out, errOut := run(t, core.SampleCSV)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut)
	}

	var records []core.QuestionRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(records) != 5 || records[2].CorrectAnswers != "B" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestValidFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(path, []byte(core.SampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := run(t, "", "-format", "yaml", path)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut)
	}

	var records []core.QuestionRecord
	if err := yaml.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(records) != 5 || records[1].Type != core.KindMultiple {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestValidationErrors(t *testing.T) {
	input := "question,type,optionA,optionB,optionC,optionD,correctAnswers\nQ,true-false,True,False,,,A|B"
	code, out, errOut := run(t, input)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out != "" {
		t.Fatalf("expected no stdout output, got %q", out)
	}
	if !strings.Contains(errOut, "Row 2: True-false questions can only have one correct answer") {
		t.Fatalf("expected row error on stderr, got %q", errOut)
	}
}

func TestHeaderOnly(t *testing.T) {
	code, _, errOut := run(t, "question,type,optionA,optionB,correctAnswers\n")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "FILE005") {
		t.Fatalf("expected no-rows message, got %q", errOut)
	}
}

func TestMissingColumnWarning(t *testing.T) {
	code, _, errOut := run(t, "question,type\nQ,single")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "missing required column: optionA, optionB, correctAnswers") {
		t.Fatalf("expected header warning, got %q", errOut)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"-format", "xml"}},
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "two files", args: []string{"a.csv", "b.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := run(t, "", tt.args...)
			if code != ExitUsage {
				t.Fatalf("expected exit %d, got %d", ExitUsage, code)
			}
		})
	}
}

func TestFileErrors(t *testing.T) {
	code, _, errOut := run(t, "", "questions.txt")
	if code != ExitError || !strings.Contains(errOut, "FILE002") {
		t.Fatalf("non-csv file: exit %d, stderr %q", code, errOut)
	}

	code, _, _ = run(t, "", filepath.Join(t.TempDir(), "missing.csv"))
	if code != ExitError {
		t.Fatalf("missing file: expected exit %d, got %d", ExitError, code)
	}

	code, _, errOut = run(t, "")
	if code != ExitError || !strings.Contains(errOut, "FILE004") {
		t.Fatalf("empty stdin: exit %d, stderr %q", code, errOut)
	}
}
