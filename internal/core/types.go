// Package core provides the business logic for exam authoring.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"context"
	"strings"
	"time"
)

// Kind is a question's answer-format category.
type Kind string

const (
	KindTrueFalse Kind = "true-false"
	KindSingle    Kind = "single"
	KindMultiple  Kind = "multiple"
)

// Kinds lists every valid kind in display order.
var Kinds = []Kind{KindTrueFalse, KindSingle, KindMultiple}

// ParseKind returns the kind for s. Matching is exact and case-sensitive.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// SingleAnswer reports whether questions of this kind take exactly one answer.
func (k Kind) SingleAnswer() bool {
	return k == KindTrueFalse || k == KindSingle
}

// Label returns the human-readable name used in messages.
func (k Kind) Label() string {
	switch k {
	case KindTrueFalse:
		return "True-false"
	case KindSingle:
		return "Single choice"
	case KindMultiple:
		return "Multiple choice"
	default:
		return string(k)
	}
}

// Letter labels one of the four answer options.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters lists the option letters in order.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD}

// ParseLetter returns the letter for s after trimming whitespace.
func ParseLetter(s string) (Letter, bool) {
	switch Letter(strings.TrimSpace(s)) {
	case LetterA:
		return LetterA, true
	case LetterB:
		return LetterB, true
	case LetterC:
		return LetterC, true
	case LetterD:
		return LetterD, true
	}
	return "", false
}

// index returns the 0-based position of l, or -1.
func (l Letter) index() int {
	for i, x := range Letters {
		if x == l {
			return i
		}
	}
	return -1
}

// CSV column names expected in an import file.
const (
	ColQuestion       = "question"
	ColType           = "type"
	ColOptionA        = "optionA"
	ColOptionB        = "optionB"
	ColOptionC        = "optionC"
	ColOptionD        = "optionD"
	ColCorrectAnswers = "correctAnswers"
)

// Columns is the template header in order.
var Columns = []string{
	ColQuestion, ColType, ColOptionA, ColOptionB, ColOptionC, ColOptionD, ColCorrectAnswers,
}

// RequiredColumns must be present and non-blank on every data row.
var RequiredColumns = []string{
	ColQuestion, ColType, ColOptionA, ColOptionB, ColCorrectAnswers,
}

// RawRow maps header name to the raw field value of one data line.
type RawRow map[string]string

// QuestionRecord is a validated CSV row as shown in the preview table.
// CorrectAnswers keeps the pipe-delimited form from the file; use
// Question to get the structured form.
type QuestionRecord struct {
	Question       string `json:"question" yaml:"question"`
	Type           Kind   `json:"type" yaml:"type"`
	OptionA        string `json:"optionA" yaml:"optionA"`
	OptionB        string `json:"optionB" yaml:"optionB"`
	OptionC        string `json:"optionC" yaml:"optionC"`
	OptionD        string `json:"optionD" yaml:"optionD"`
	CorrectAnswers string `json:"correctAnswers" yaml:"correctAnswers"`
}

// Options holds the four answer choices keyed by letter position.
type Options [4]string

// Get returns the option text for l.
func (o Options) Get(l Letter) string {
	if i := l.index(); i >= 0 {
		return o[i]
	}
	return ""
}

// Question is a structured exam question ready for preview or storage.
//
// Invariants: CorrectAnswers is non-empty, every entry names a non-empty
// option, and TrueFalse/Single questions have exactly one entry.
type Question struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Kind           Kind     `json:"type"`
	Options        Options  `json:"options"`
	CorrectAnswers []Letter `json:"correctAnswers"`
	ImageName      string   `json:"imageName,omitempty"`
}

// IsCorrect reports whether l is one of the question's correct answers.
func (q Question) IsCorrect(l Letter) bool {
	for _, a := range q.CorrectAnswers {
		if a == l {
			return true
		}
	}
	return false
}

// ExamSource records which authoring flow produced an exam.
type ExamSource string

const (
	SourceCSV    ExamSource = "csv"
	SourceManual ExamSource = "manual"
)

// DefaultDurationMinutes is used when no positive duration is given.
const DefaultDurationMinutes = 60

// Exam is a saved exam.
type Exam struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Source          ExamSource `json:"source"`
	Questions       []Question `json:"questions"`
	SavedAt         time.Time  `json:"savedAt"`
}

// ExamStore persists saved exams.
type ExamStore interface {
	SaveExam(ctx context.Context, exam Exam) error
	ListExams(ctx context.Context) ([]Exam, error)
}

// NoticeVariant distinguishes success notices from failures.
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is the message a client shows after an action.
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}
