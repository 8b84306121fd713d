// Package cli implements examcsv, which checks a question file offline
// with the same pipeline the server uses.
package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/exampro/internal/core"
	"github.com/JonMunkholm/exampro/internal/logging"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// Run executes examcsv with args (without the program name) and returns the
// process exit code. With no file argument, or "-", the file is read from stdin.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("examcsv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", formatJSON, "output format for parsed questions: json or yaml")
	template := fs.Bool("template", false, "print the sample question file and exit")
	verbose := fs.Bool("v", false, "log parsing details to stderr")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(fs, stdout)
			return ExitOK
		}
		printUsage(fs, stderr)
		return ExitUsage
	}
	if *format != formatJSON && *format != formatYAML {
		fmt.Fprintf(stderr, "examcsv: unknown format %q (want json or yaml)\n", *format)
		return ExitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "examcsv: at most one file may be given")
		printUsage(fs, stderr)
		return ExitUsage
	}

	if *template {
		fmt.Fprintln(stdout, core.SampleCSV)
		return ExitOK
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logging.New(stderr, level, "text")

	name := fs.Arg(0)
	text, err := readInput(name, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "examcsv: %s\n", core.FormatUserError(err))
		log.Debug("read failed", "file", name, "error", err)
		return ExitError
	}

	tok := core.NewTokenizer(text)
	if err := core.ValidateHeaders(tok.Headers()); err != nil && len(tok.Headers()) > 0 {
		fmt.Fprintf(stderr, "examcsv: warning: %v\n", err)
	}

	result := core.ParseQuestions(text)
	log.Debug("parsed question file",
		"file", name,
		"headers", tok.Headers(),
		"valid", result.Valid,
		"questions", len(result.Records),
		"errors", len(result.Errors),
	)

	if !result.Valid {
		fmt.Fprintf(stderr, "examcsv: %d validation error(s):\n", len(result.Errors))
		for _, e := range result.ErrorStrings() {
			fmt.Fprintf(stderr, "  %s\n", e)
		}
		return ExitError
	}
	if len(result.Records) == 0 {
		fmt.Fprintf(stderr, "examcsv: %s\n", core.FormatUserError(core.ErrNoRows))
		return ExitError
	}

	if err := writeRecords(stdout, *format, result.Records); err != nil {
		fmt.Fprintf(stderr, "examcsv: write output: %v\n", err)
		return ExitError
	}
	return ExitOK
}

func readInput(name string, stdin io.Reader) (string, error) {
	if name == "" || name == "-" {
		return core.ReadSource(stdin, core.DefaultMaxFileSize)
	}
	if err := core.CheckFileType(name, ""); err != nil {
		return "", err
	}
	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return core.ReadSource(f, core.DefaultMaxFileSize)
}

func writeRecords(w io.Writer, format string, records []core.QuestionRecord) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  examcsv [-format json|yaml] [-v] [file.csv]")
	fmt.Fprintln(w, "  examcsv -template > exam_template.csv")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Checks an exam question file and prints the parsed questions.")
	fmt.Fprintln(w, "Exits 1 when the file has validation errors.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
