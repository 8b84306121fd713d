package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDraftForKind(t *testing.T) {
	tf := DraftForKind(KindTrueFalse)
	if tf.Options.A != "True" || tf.Options.B != "False" {
		t.Errorf("true-false options = %+v, want True/False", tf.Options)
	}

	single := DraftForKind(KindSingle)
	if single.Options != (DraftOptions{}) {
		t.Errorf("single options = %+v, want empty", single.Options)
	}
	if single.CorrectAnswers == nil || len(single.CorrectAnswers) != 0 {
		t.Errorf("CorrectAnswers = %v, want empty slice", single.CorrectAnswers)
	}
}

func TestQuestionDraft_Validate(t *testing.T) {
	tests := []struct {
		name  string
		draft QuestionDraft
		want  []string // substrings expected among the messages
	}{
		{
			name: "valid single",
			draft: QuestionDraft{
				Text:           "Capital of India?",
				Kind:           KindSingle,
				Options:        DraftOptions{A: "Mumbai", B: "Delhi"},
				CorrectAnswers: []string{"B"},
			},
		},
		{
			name: "valid true-false ignores typed options",
			draft: QuestionDraft{
				Text:           "Sky is blue",
				Kind:           KindTrueFalse,
				CorrectAnswers: []string{"A"},
			},
		},
		{
			name: "blank text",
			draft: QuestionDraft{
				Text:           "   ",
				Kind:           KindSingle,
				Options:        DraftOptions{A: "a", B: "b"},
				CorrectAnswers: []string{"A"},
			},
			want: []string{"Question text is required"},
		},
		{
			name: "missing option B",
			draft: QuestionDraft{
				Text:           "Q",
				Kind:           KindMultiple,
				Options:        DraftOptions{A: "a", C: "c"},
				CorrectAnswers: []string{"A"},
			},
			want: []string{"At least options A and B are required"},
		},
		{
			name: "no correct answer",
			draft: QuestionDraft{
				Text:    "Q",
				Kind:    KindSingle,
				Options: DraftOptions{A: "a", B: "b"},
			},
			want: []string{"At least one correct answer must be selected"},
		},
		{
			name: "single with two answers",
			draft: QuestionDraft{
				Text:           "Q",
				Kind:           KindSingle,
				Options:        DraftOptions{A: "a", B: "b"},
				CorrectAnswers: []string{"A", "B"},
			},
			want: []string{"Single choice questions can only have one correct answer"},
		},
		{
			name: "true-false with two answers",
			draft: QuestionDraft{
				Text:           "Q",
				Kind:           KindTrueFalse,
				CorrectAnswers: []string{"A", "B"},
			},
			want: []string{"True-false questions can only have one correct answer"},
		},
		{
			name: "answer on empty option",
			draft: QuestionDraft{
				Text:           "Q",
				Kind:           KindMultiple,
				Options:        DraftOptions{A: "a", B: "b"},
				CorrectAnswers: []string{"A", "D"},
			},
			want: []string{"Correct answer D refers to an empty option"},
		},
		{
			name: "unknown answer letter",
			draft: QuestionDraft{
				Text:           "Q",
				Kind:           KindMultiple,
				Options:        DraftOptions{A: "a", B: "b"},
				CorrectAnswers: []string{"E"},
			},
			want: []string{"correctAnswers[0]"},
		},
		{
			name: "unknown kind",
			draft: QuestionDraft{
				Text:           "Q",
				Kind:           "essay",
				Options:        DraftOptions{A: "a", B: "b"},
				CorrectAnswers: []string{"A"},
			},
			want: []string{"type"},
		},
		{
			name:  "empty single draft collects every problem",
			draft: DraftForKind(KindSingle),
			want: []string{
				"Question text is required",
				"At least options A and B are required",
				"At least one correct answer must be selected",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var de *DraftError
			if !errors.As(err, &de) {
				t.Fatalf("Validate() = %v, want *DraftError", err)
			}
			joined := strings.Join(de.Messages, "\n")
			for _, w := range tt.want {
				if !strings.Contains(joined, w) {
					t.Errorf("messages %q missing %q", de.Messages, w)
				}
			}
		})
	}
}

func TestQuestionDraft_ValidateMessageOrder(t *testing.T) {
	tests := []struct {
		name  string
		draft QuestionDraft
		want  []string
	}{
		{
			name:  "text then options then answers",
			draft: DraftForKind(KindSingle),
			want: []string{
				"Question text is required",
				"At least options A and B are required",
				"At least one correct answer must be selected",
			},
		},
		{
			name: "options before answer count",
			draft: QuestionDraft{
				Text:           "Q",
				Kind:           KindSingle,
				Options:        DraftOptions{A: "a", B: "b", C: "c"},
				CorrectAnswers: []string{"A", "D"},
			},
			want: []string{
				"Single choice questions can only have one correct answer",
				"Correct answer D refers to an empty option",
			},
		},
		{
			name: "blank options with an answer",
			draft: QuestionDraft{
				Kind:           KindMultiple,
				Options:        DraftOptions{A: "a"},
				CorrectAnswers: []string{"A"},
			},
			want: []string{
				"Question text is required",
				"At least options A and B are required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var de *DraftError
			if err := tt.draft.Validate(); !errors.As(err, &de) {
				t.Fatalf("Validate() = %v, want *DraftError", err)
			}
			if !reflect.DeepEqual(de.Messages, tt.want) {
				t.Errorf("Messages = %q, want %q", de.Messages, tt.want)
			}
		})
	}
}

func TestQuestionDraft_ToQuestion(t *testing.T) {
	q, err := QuestionDraft{
		Text:           "  Select all even numbers:  ",
		Kind:           KindMultiple,
		Options:        DraftOptions{A: "2", B: "3", C: "4", D: "5"},
		CorrectAnswers: []string{"A", " C "},
		ImageName:      "numbers.png",
	}.ToQuestion()
	if err != nil {
		t.Fatalf("ToQuestion() error = %v", err)
	}

	if q.ID == "" {
		t.Error("ID should be assigned")
	}
	if q.Text != "Select all even numbers:" {
		t.Errorf("Text = %q, want trimmed", q.Text)
	}
	if want := []Letter{LetterA, LetterC}; !reflect.DeepEqual(q.CorrectAnswers, want) {
		t.Errorf("CorrectAnswers = %v, want %v", q.CorrectAnswers, want)
	}
	if q.Options.Get(LetterD) != "5" {
		t.Errorf("option D = %q, want 5", q.Options.Get(LetterD))
	}
	if q.ImageName != "numbers.png" {
		t.Errorf("ImageName = %q", q.ImageName)
	}
}

func TestQuestionDraft_ToQuestionTrueFalse(t *testing.T) {
	q, err := QuestionDraft{
		Text:           "Water is wet",
		Kind:           KindTrueFalse,
		Options:        DraftOptions{A: "Yes", B: "No"},
		CorrectAnswers: []string{"B"},
	}.ToQuestion()
	if err != nil {
		t.Fatalf("ToQuestion() error = %v", err)
	}
	if q.Options.Get(LetterA) != "True" || q.Options.Get(LetterB) != "False" {
		t.Errorf("options = %v, want True/False", q.Options)
	}
}

func TestDraftError_Error(t *testing.T) {
	err := &DraftError{Messages: []string{"Question text is required", "At least options A and B are required"}}
	want := "invalid question draft: Question text is required, At least options A and B are required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if MapError(err).Code != "VAL004" {
		t.Errorf("MapError code = %q, want VAL004", MapError(err).Code)
	}
}
