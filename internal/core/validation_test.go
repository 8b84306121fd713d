package core

import (
	"reflect"
	"strings"
	"testing"
)

const testHeader = "question,type,optionA,optionB,optionC,optionD,correctAnswers\n"

func TestValidateRows(t *testing.T) {
	tests := []struct {
		name string
		rows string
		want []string
	}{
		{
			name: "valid rows",
			rows: "Sky blue?,true-false,True,False,,,A\nPick two,multiple,a,b,c,d,A|D",
			want: []string{},
		},
		{
			name: "all required fields missing",
			rows: ",,,,,,",
			want: []string{
				"Row 2: Missing question",
				"Row 2: Missing type",
				"Row 2: Missing optionA",
				"Row 2: Missing optionB",
				"Row 2: Missing correctAnswers",
			},
		},
		{
			name: "invalid type",
			rows: "Q,essay,a,b,,,A",
			want: []string{`Row 2: Invalid question type "essay". Must be true-false, single, or multiple`},
		},
		{
			name: "type is case sensitive",
			rows: "Q,Single,a,b,,,A",
			want: []string{`Row 2: Invalid question type "Single". Must be true-false, single, or multiple`},
		},
		{
			name: "invalid answer token",
			rows: "Q,multiple,a,b,c,d,A|E",
			want: []string{`Row 2: Invalid answer "E". Must be A, B, C, or D`},
		},
		{
			name: "lowercase answer rejected",
			rows: "Q,single,a,b,,,b",
			want: []string{`Row 2: Invalid answer "b". Must be A, B, C, or D`},
		},
		{
			name: "true-false with two answers",
			rows: "Q,true-false,True,False,,,A|B",
			want: []string{"Row 2: True-false questions can only have one correct answer"},
		},
		{
			name: "single with two answers",
			rows: "Q,single,a,b,c,,A|C",
			want: []string{"Row 2: Single choice questions can only have one correct answer"},
		},
		{
			name: "invalid type skips answer count check",
			rows: "Q,essay,a,b,,,A|B",
			want: []string{`Row 2: Invalid question type "essay". Must be true-false, single, or multiple`},
		},
		{
			name: "several errors on one row in rule order",
			rows: "Q,single,,b,,,A|X",
			want: []string{
				"Row 2: Missing optionA",
				`Row 2: Invalid answer "X". Must be A, B, C, or D`,
				"Row 2: Single choice questions can only have one correct answer",
			},
		},
		{
			name: "row numbers count the header and skip blank lines",
			rows: "Q1,single,a,b,,,A\n\nQ2,single,a,b,,,Z",
			want: []string{`Row 3: Invalid answer "Z". Must be A, B, C, or D`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRows(Tokenize(testHeader + tt.rows))
			got := result.ErrorStrings()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("errors = %q, want %q", got, tt.want)
			}
			if result.Valid != (len(tt.want) == 0) {
				t.Errorf("Valid = %v with %d errors", result.Valid, len(tt.want))
			}
		})
	}
}

func TestValidateRows_Empty(t *testing.T) {
	result := ValidateRows(nil)
	if !result.Valid || len(result.Errors) != 0 {
		t.Errorf("ValidateRows(nil) = %+v, want valid with no errors", result)
	}
}

func TestValidateRow_ErrorFields(t *testing.T) {
	errs := ValidateRow(RawRow{
		ColQuestion:       "Q",
		ColType:           "single",
		ColOptionA:        "a",
		ColOptionB:        "b",
		ColCorrectAnswers: "Q",
	}, 7)

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	e := errs[0]
	if e.Row != 7 || e.Field != ColCorrectAnswers || e.Value != "Q" {
		t.Errorf("error = %+v, want row 7 on correctAnswers with value Q", e)
	}
}

func TestValidateRow_MissingColumnsTreatedAsEmpty(t *testing.T) {
	rows := Tokenize("question,type\nWhat?,single")
	errs := ValidateRows(rows).ErrorStrings()
	want := []string{
		"Row 2: Missing optionA",
		"Row 2: Missing optionB",
		"Row 2: Missing correctAnswers",
	}
	if !reflect.DeepEqual(errs, want) {
		t.Errorf("errors = %q, want %q", errs, want)
	}
}

func TestValidateHeaders(t *testing.T) {
	if err := ValidateHeaders(Columns); err != nil {
		t.Errorf("ValidateHeaders(Columns) = %v, want nil", err)
	}

	err := ValidateHeaders([]string{"question", "optionA", "optionC"})
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "type, optionB, correctAnswers") {
		t.Errorf("error = %q, want missing type, optionB, correctAnswers", err)
	}
}
