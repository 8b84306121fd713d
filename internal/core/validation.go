package core

// validation.go provides row-level validation for imported question rows.
//
// Every rule runs independently so one row can collect several errors. Errors
// are ordered by row, then required-field checks in column order, then the
// type and answer checks. Validation of a batch is all-or-nothing: callers
// must not import any row when the result is invalid.

import (
	"fmt"
	"strings"
)

// headerRowOffset converts a 0-based data row index into the row number a
// spreadsheet shows, counting the header line.
const headerRowOffset = 2

// answerSeparator separates letters in the correctAnswers column.
const answerSeparator = "|"

// ValidationError represents a single rule violation on one row.
type ValidationError struct {
	Row     int    // Spreadsheet row number (data index + 2)
	Field   string // Column the rule applies to
	Value   string // The offending value, if any
	Message string // Human-readable message without the row prefix
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// ValidationResult contains the result of validating a batch of rows.
type ValidationResult struct {
	Valid  bool              // True if every row passed
	Errors []ValidationError // Every violation, in row order
}

// ErrorStrings renders the errors the way the import form lists them.
func (r ValidationResult) ErrorStrings() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Error()
	}
	return out
}

// ValidateRows checks every row and collects all errors.
func ValidateRows(rows []RawRow) ValidationResult {
	var errs []ValidationError
	for i, row := range rows {
		errs = append(errs, ValidateRow(row, i+headerRowOffset)...)
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateRow returns every violation for a single row numbered rowNum.
func ValidateRow(row RawRow, rowNum int) []ValidationError {
	var errs []ValidationError

	for _, field := range RequiredColumns {
		if strings.TrimSpace(row[field]) == "" {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   field,
				Message: "Missing " + field,
			})
		}
	}

	typ := row[ColType]
	if typ != "" {
		if _, ok := ParseKind(typ); !ok {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   ColType,
				Value:   typ,
				Message: fmt.Sprintf("Invalid question type \"%s\". Must be true-false, single, or multiple", typ),
			})
		}
	}

	answers := row[ColCorrectAnswers]
	if answers == "" {
		return errs
	}

	tokens := strings.Split(answers, answerSeparator)
	for _, tok := range tokens {
		if _, ok := ParseLetter(tok); !ok {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   ColCorrectAnswers,
				Value:   tok,
				Message: fmt.Sprintf("Invalid answer \"%s\". Must be A, B, C, or D", tok),
			})
		}
	}

	if kind, ok := ParseKind(typ); ok && kind.SingleAnswer() && len(tokens) > 1 {
		errs = append(errs, ValidationError{
			Row:     rowNum,
			Field:   ColCorrectAnswers,
			Value:   answers,
			Message: kind.Label() + " questions can only have one correct answer",
		})
	}

	return errs
}

// ValidateHeaders reports required columns missing from headers. A file
// without them still tokenizes; every row then fails the required-field
// check, so this is only used for an early, friendlier message.
func ValidateHeaders(headers []string) error {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column: %s", strings.Join(missing, ", "))
	}
	return nil
}
