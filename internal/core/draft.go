package core

// draft.go validates questions entered one at a time on the manual form.
//
// Field rules live in struct tags; rules spanning several fields (options A
// and B, answer count per kind, answers pointing at empty options) are a
// struct-level validation. Messages are the ones the manual form shows.

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
)

// DraftOptions holds the four option inputs of the manual form.
type DraftOptions struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// QuestionDraft is a question being composed on the manual form.
type QuestionDraft struct {
	Text           string       `json:"text" validate:"notblank"`
	Kind           Kind         `json:"type" validate:"required,oneof=true-false single multiple"`
	Options        DraftOptions `json:"options"`
	CorrectAnswers []string     `json:"correctAnswers" validate:"min=1,unique,dive,oneof=A B C D"`
	ImageName      string       `json:"imageName,omitempty" validate:"max=255"`
}

// DraftForKind returns an empty draft of the given kind. True-false drafts
// come with their fixed True/False options.
func DraftForKind(kind Kind) QuestionDraft {
	d := QuestionDraft{Kind: kind, CorrectAnswers: []string{}}
	if kind == KindTrueFalse {
		d.Options = DraftOptions{A: "True", B: "False"}
	}
	return d
}

// DraftError lists every problem found in a draft.
type DraftError struct {
	Messages []string
}

func (e *DraftError) Error() string {
	return "invalid question draft: " + strings.Join(e.Messages, ", ")
}

const (
	notBlankTag     = "notblank"
	optionsABTag    = "options_ab"
	singleAnswerTag = "single_answer"
	answerOptionTag = "answer_option"
)

var (
	draftValidate   *validator.Validate
	draftTranslator ut.Translator
)

func init() {
	draftValidate = validator.New()

	english := en.New()
	uni := ut.New(english, english)
	draftTranslator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(draftValidate, draftTranslator)

	// Report JSON names, not Go field names.
	draftValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = draftValidate.RegisterValidation(notBlankTag, notBlank)
	draftValidate.RegisterStructValidation(draftStructValidation, QuestionDraft{})
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func draftStructValidation(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(QuestionDraft)
	if !ok {
		return
	}

	if d.Kind != KindTrueFalse {
		if strings.TrimSpace(d.Options.A) == "" || strings.TrimSpace(d.Options.B) == "" {
			sl.ReportError(d.Options, "options", "Options", optionsABTag, "")
		}
	}

	if d.Kind.SingleAnswer() && len(d.CorrectAnswers) > 1 {
		sl.ReportError(d.CorrectAnswers, "correctAnswers", "CorrectAnswers", singleAnswerTag, string(d.Kind))
	}

	opts := d.options()
	for _, a := range d.CorrectAnswers {
		l, ok := ParseLetter(a)
		if ok && strings.TrimSpace(opts.Get(l)) == "" {
			sl.ReportError(d.CorrectAnswers, "correctAnswers", "CorrectAnswers", answerOptionTag, string(l))
		}
	}
}

func (d QuestionDraft) options() Options {
	return Options{d.Options.A, d.Options.B, d.Options.C, d.Options.D}
}

// normalize trims input and applies the fixed true-false options.
func (d QuestionDraft) normalize() QuestionDraft {
	d.Text = strings.TrimSpace(d.Text)
	if d.Kind == KindTrueFalse {
		d.Options = DraftOptions{A: "True", B: "False"}
	}
	answers := make([]string, len(d.CorrectAnswers))
	for i, a := range d.CorrectAnswers {
		answers[i] = strings.TrimSpace(a)
	}
	d.CorrectAnswers = answers
	return d
}

// Validate checks the draft and returns a *DraftError describing every
// problem, or nil.
func (d QuestionDraft) Validate() error {
	err := draftValidate.Struct(d.normalize())
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate question draft: %w", err)
	}

	// Struct-level rules run after field rules; report in form order instead.
	slices.SortStableFunc(verrs, func(a, b validator.FieldError) int {
		return cmp.Compare(fieldOrder(a.Field()), fieldOrder(b.Field()))
	})

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, draftMessage(fe))
	}
	return &DraftError{Messages: messages}
}

// fieldOrder ranks draft fields the way the manual form checks them.
func fieldOrder(field string) int {
	switch {
	case field == "text":
		return 0
	case field == "type":
		return 1
	case field == "options":
		return 2
	case strings.HasPrefix(field, "correctAnswers"):
		return 3
	default:
		return 4
	}
}

func draftMessage(fe validator.FieldError) string {
	switch {
	case fe.Tag() == notBlankTag && fe.Field() == "text":
		return "Question text is required"
	case fe.Tag() == optionsABTag:
		return "At least options A and B are required"
	case fe.Tag() == "min" && fe.Field() == "correctAnswers":
		return "At least one correct answer must be selected"
	case fe.Tag() == singleAnswerTag:
		return Kind(fe.Param()).Label() + " questions can only have one correct answer"
	case fe.Tag() == answerOptionTag:
		return fmt.Sprintf("Correct answer %s refers to an empty option", fe.Param())
	default:
		return fe.Translate(draftTranslator)
	}
}

// ToQuestion validates the draft and builds a Question with a fresh ID.
func (d QuestionDraft) ToQuestion() (Question, error) {
	if err := d.Validate(); err != nil {
		return Question{}, err
	}
	d = d.normalize()

	q := Question{
		ID:        uuid.NewString(),
		Text:      d.Text,
		Kind:      d.Kind,
		Options:   d.options(),
		ImageName: d.ImageName,
	}
	for _, a := range d.CorrectAnswers {
		l, _ := ParseLetter(a)
		q.CorrectAnswers = append(q.CorrectAnswers, l)
	}
	if err := checkQuestion(q); err != nil {
		return Question{}, err
	}
	return q, nil
}
