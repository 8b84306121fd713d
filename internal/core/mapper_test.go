package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseQuestions_Sample(t *testing.T) {
	result := ParseQuestions(SampleCSV)
	if !result.Valid {
		t.Fatalf("sample should be valid, got errors %v", result.ErrorStrings())
	}
	if len(result.Records) != 5 {
		t.Fatalf("got %d records, want 5", len(result.Records))
	}

	want := QuestionRecord{
		Question:       "Which of these are fruits?",
		Type:           KindMultiple,
		OptionA:        "Apple",
		OptionB:        "Car",
		OptionC:        "Orange",
		OptionD:        "Train",
		CorrectAnswers: "A|C",
	}
	if result.Records[1] != want {
		t.Errorf("record[1] = %+v, want %+v", result.Records[1], want)
	}

	if got := result.Records[2].CorrectAnswers; got != "B" {
		t.Errorf("record[2].CorrectAnswers = %q, want %q", got, "B")
	}

	for i, rec := range result.Records {
		if _, err := rec.ToQuestion(); err != nil {
			t.Errorf("record[%d].ToQuestion() error: %v", i, err)
		}
	}
}

func TestParseQuestions_Repeatable(t *testing.T) {
	first := ParseQuestions(SampleCSV)
	second := ParseQuestions(SampleCSV)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing the same text twice differs:\n%+v\n%+v", first, second)
	}
}

func TestParseQuestions_ByteOrderMark(t *testing.T) {
	withBOM := ParseQuestions("\uFEFF" + SampleCSV)
	if !withBOM.Valid {
		t.Fatalf("sample with BOM should be valid, got errors %v", withBOM.ErrorStrings())
	}
	if plain := ParseQuestions(SampleCSV); !reflect.DeepEqual(withBOM.Records, plain.Records) {
		t.Errorf("records with BOM = %+v, want %+v", withBOM.Records, plain.Records)
	}
}

func TestParseQuestions_AllOrNothing(t *testing.T) {
	text := testHeader +
		"Good one,single,a,b,,,A\n" +
		"Bad one,single,a,b,,,A|B\n" +
		"Another good,multiple,a,b,c,,A|C"

	result := ParseQuestions(text)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if result.Records == nil || len(result.Records) != 0 {
		t.Errorf("Records = %v, want empty non-nil slice", result.Records)
	}
	if len(result.Errors) != 1 || result.Errors[0].Row != 3 {
		t.Errorf("Errors = %v, want one error on row 3", result.ErrorStrings())
	}
}

func TestParseQuestions_HeaderOnly(t *testing.T) {
	result := ParseQuestions(testHeader)
	if !result.Valid {
		t.Errorf("header-only file should be valid, got %v", result.ErrorStrings())
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
}

func TestMapRows_MissingOptionalColumns(t *testing.T) {
	rows := Tokenize("question,type,optionA,optionB,correctAnswers\nQ,single,Yes,No,B")
	records := MapRows(rows)

	want := []QuestionRecord{{
		Question:       "Q",
		Type:           KindSingle,
		OptionA:        "Yes",
		OptionB:        "No",
		CorrectAnswers: "B",
	}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("MapRows = %+v, want %+v", records, want)
	}
}

func TestQuestionRecord_AnswerLetters(t *testing.T) {
	rec := QuestionRecord{CorrectAnswers: "A| C"}

	if got, want := rec.AnswerLetters(), []Letter{LetterA, LetterC}; !reflect.DeepEqual(got, want) {
		t.Errorf("AnswerLetters() = %v, want %v", got, want)
	}
	if !rec.IsCorrect(LetterC) {
		t.Error("IsCorrect(C) = false, want true")
	}
	if rec.IsCorrect(LetterB) {
		t.Error("IsCorrect(B) = true, want false")
	}
}

func TestQuestionRecord_ToQuestion(t *testing.T) {
	tests := []struct {
		name    string
		rec     QuestionRecord
		wantErr error
	}{
		{
			name: "true-false",
			rec:  QuestionRecord{Question: "Sky blue?", Type: KindTrueFalse, OptionA: "True", OptionB: "False", CorrectAnswers: "A"},
		},
		{
			name: "multiple",
			rec:  QuestionRecord{Question: "Evens", Type: KindMultiple, OptionA: "2", OptionB: "3", OptionC: "4", CorrectAnswers: "A|C"},
		},
		{
			name:    "answer points at empty option",
			rec:     QuestionRecord{Question: "Q", Type: KindSingle, OptionA: "a", OptionB: "b", CorrectAnswers: "D"},
			wantErr: ErrAnswerEmptyOption,
		},
		{
			name:    "duplicate answer",
			rec:     QuestionRecord{Question: "Q", Type: KindMultiple, OptionA: "a", OptionB: "b", CorrectAnswers: "A|A"},
			wantErr: ErrDuplicateAnswer,
		},
		{
			name:    "no answers",
			rec:     QuestionRecord{Question: "Q", Type: KindSingle, OptionA: "a", OptionB: "b"},
			wantErr: ErrNoCorrectAnswer,
		},
		{
			name:    "too many answers for single",
			rec:     QuestionRecord{Question: "Q", Type: KindSingle, OptionA: "a", OptionB: "b", CorrectAnswers: "A|B"},
			wantErr: ErrTooManyAnswers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.rec.ToQuestion()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ToQuestion() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToQuestion() error = %v", err)
			}
			if q.Kind != tt.rec.Type {
				t.Errorf("Kind = %q, want %q", q.Kind, tt.rec.Type)
			}
			for _, l := range tt.rec.AnswerLetters() {
				if !q.IsCorrect(l) {
					t.Errorf("IsCorrect(%s) = false", l)
				}
			}
		})
	}
}

func TestQuestionRecord_ToQuestionInvalidType(t *testing.T) {
	_, err := QuestionRecord{Question: "Q", Type: "essay", OptionA: "a", OptionB: "b", CorrectAnswers: "A"}.ToQuestion()
	if err == nil {
		t.Error("expected error for unknown type")
	}
}
