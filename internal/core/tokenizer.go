package core

// tokenizer.go turns raw question-file text into RawRows.
//
// The format is a relaxed CSV:
//   - Blank lines are dropped anywhere in the file, not just at the end
//   - The first remaining line is the header; quotes are stripped from header
//     names and a header name can never contain a comma
//   - A '"' toggles quoted mode and is never kept; a ',' inside quotes is data
//   - There is no "" escape: every quote toggles
//   - Field values are trimmed, which also drops the '\r' of CRLF files and a
//     byte order mark left on the header line

import (
	"strings"
	"unicode"
)

// Tokenizer yields the data rows of a question file one at a time.
// It makes a single pass over the text and cannot be restarted.
type Tokenizer struct {
	headers []string
	lines   []string
	next    int
}

// NewTokenizer prepares text for tokenizing. Input with fewer than two
// non-blank lines produces no rows.
func NewTokenizer(text string) *Tokenizer {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return &Tokenizer{}
	}
	return &Tokenizer{
		headers: parseHeader(lines[0]),
		lines:   lines[1:],
	}
}

// Headers returns the header names parsed from the first line.
func (t *Tokenizer) Headers() []string {
	return t.headers
}

// Next returns the next data row. ok is false once the input is exhausted.
func (t *Tokenizer) Next() (row RawRow, ok bool) {
	if t.next >= len(t.lines) {
		return nil, false
	}
	values := splitLine(t.lines[t.next])
	t.next++

	row = make(RawRow, len(t.headers))
	for i, h := range t.headers {
		if i < len(values) {
			row[h] = values[i]
		} else {
			row[h] = ""
		}
	}
	return row, true
}

// Tokenize returns every data row of text in file order.
func Tokenize(text string) []RawRow {
	t := NewTokenizer(text)
	rows := make([]RawRow, 0, len(t.lines))
	for {
		row, ok := t.Next()
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}

// nonBlankLines splits on '\n' and drops lines that are empty after trimming.
func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trim(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func parseHeader(line string) []string {
	parts := strings.Split(line, ",")
	headers := make([]string, len(parts))
	for i, p := range parts {
		headers[i] = strings.ReplaceAll(trim(p), `"`, "")
	}
	return headers
}

// splitLine scans one data line with a quote-toggle flag.
func splitLine(line string) []string {
	var (
		values   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, trim(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(values, trim(current.String()))
}

// trim drops surrounding whitespace and U+FEFF.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
