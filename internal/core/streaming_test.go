package core

import (
	"errors"
	"strings"
	"testing"
)

func TestReadSource(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		want    string
		wantErr error
	}{
		{name: "plain text", input: "question,type\nQ,single", want: "question,type\nQ,single"},
		{name: "BOM stripped", input: "\xEF\xBB\xBFquestion\nQ", want: "question\nQ"},
		{name: "BOM only is empty", input: "\xEF\xBB\xBF", wantErr: ErrEmptyFile},
		{name: "empty", input: "", wantErr: ErrEmptyFile},
		{name: "whitespace only", input: "\n  \r\n", wantErr: ErrEmptyFile},
		{name: "invalid UTF-8 replaced", input: "q\n\xffa", want: "q\n�a"},
		{name: "at limit", input: "abcd", limit: 4, want: "abcd"},
		{name: "over limit", input: "abcde", limit: 4, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSource(strings.NewReader(tt.input), tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReadSource() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadSource() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadSource_TemplateRoundTrip(t *testing.T) {
	text, err := ReadSource(strings.NewReader("\xEF\xBB\xBF"+SampleCSV), 0)
	if err != nil {
		t.Fatalf("ReadSource() error = %v", err)
	}
	if result := ParseQuestions(text); !result.Valid || len(result.Records) != 5 {
		t.Errorf("ParseQuestions after BOM strip = %+v", result)
	}
}

func TestCheckFileType(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		wantErr     bool
	}{
		{name: "csv extension", fileName: "questions.csv"},
		{name: "upper case extension", fileName: "QUESTIONS.CSV"},
		{name: "text/csv without extension", fileName: "questions", contentType: "text/csv; charset=utf-8"},
		{name: "excel file", fileName: "questions.xlsx", contentType: "application/vnd.ms-excel", wantErr: true},
		{name: "text file", fileName: "questions.txt", contentType: "text/plain", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFileType(tt.fileName, tt.contentType)
			if tt.wantErr && !errors.Is(err, ErrInvalidFileType) {
				t.Errorf("CheckFileType() = %v, want ErrInvalidFileType", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CheckFileType() = %v, want nil", err)
			}
		})
	}
}
