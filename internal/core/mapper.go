package core

import (
	"errors"
	"fmt"
	"strings"
)

// ImportResult is the outcome of running a question file through the
// tokenize, validate and map pipeline.
type ImportResult struct {
	ValidationResult
	Records []QuestionRecord // Empty unless Valid
}

// ParseQuestions tokenizes, validates and maps text. When any row fails
// validation no records are returned.
func ParseQuestions(text string) ImportResult {
	rows := Tokenize(text)
	validation := ValidateRows(rows)
	if !validation.Valid {
		return ImportResult{ValidationResult: validation, Records: []QuestionRecord{}}
	}
	return ImportResult{ValidationResult: validation, Records: MapRows(rows)}
}

// MapRows converts validated rows to records in file order. Optional option
// columns absent from the file become empty strings.
func MapRows(rows []RawRow) []QuestionRecord {
	records := make([]QuestionRecord, len(rows))
	for i, row := range rows {
		records[i] = QuestionRecord{
			Question:       row[ColQuestion],
			Type:           Kind(row[ColType]),
			OptionA:        row[ColOptionA],
			OptionB:        row[ColOptionB],
			OptionC:        row[ColOptionC],
			OptionD:        row[ColOptionD],
			CorrectAnswers: row[ColCorrectAnswers],
		}
	}
	return records
}

// Errors returned when a record or draft breaks the Question invariants.
var (
	ErrNoCorrectAnswer   = errors.New("at least one correct answer must be selected")
	ErrTooManyAnswers    = errors.New("question can only have one correct answer")
	ErrAnswerEmptyOption = errors.New("correct answer refers to an empty option")
	ErrDuplicateAnswer   = errors.New("correct answer listed more than once")
)

// Options returns the record's option texts by letter.
func (r QuestionRecord) Options() Options {
	return Options{r.OptionA, r.OptionB, r.OptionC, r.OptionD}
}

// AnswerLetters splits CorrectAnswers into letters, skipping anything that
// is not A-D.
func (r QuestionRecord) AnswerLetters() []Letter {
	var letters []Letter
	for _, tok := range strings.Split(r.CorrectAnswers, answerSeparator) {
		if l, ok := ParseLetter(tok); ok {
			letters = append(letters, l)
		}
	}
	return letters
}

// IsCorrect reports whether l appears in CorrectAnswers.
func (r QuestionRecord) IsCorrect(l Letter) bool {
	for _, a := range r.AnswerLetters() {
		if a == l {
			return true
		}
	}
	return false
}

// ToQuestion converts the record to its structured form, enforcing the
// invariants that CSV validation does not check.
func (r QuestionRecord) ToQuestion() (Question, error) {
	kind, ok := ParseKind(string(r.Type))
	if !ok {
		return Question{}, fmt.Errorf("invalid question type %q", r.Type)
	}
	q := Question{
		Text:           strings.TrimSpace(r.Question),
		Kind:           kind,
		Options:        r.Options(),
		CorrectAnswers: r.AnswerLetters(),
	}
	if err := checkQuestion(q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// checkQuestion enforces the Question invariants.
func checkQuestion(q Question) error {
	if len(q.CorrectAnswers) == 0 {
		return ErrNoCorrectAnswer
	}
	if q.Kind.SingleAnswer() && len(q.CorrectAnswers) > 1 {
		return ErrTooManyAnswers
	}
	seen := make(map[Letter]bool, len(q.CorrectAnswers))
	for _, l := range q.CorrectAnswers {
		if seen[l] {
			return fmt.Errorf("%w: %s", ErrDuplicateAnswer, l)
		}
		seen[l] = true
		if strings.TrimSpace(q.Options.Get(l)) == "" {
			return fmt.Errorf("%w: %s", ErrAnswerEmptyOption, l)
		}
	}
	return nil
}
