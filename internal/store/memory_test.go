package store

import (
	"context"
	"testing"
	"time"

	"github.com/JonMunkholm/exampro/internal/core"
)

func sampleExam(id string) core.Exam {
	return core.Exam{
		ID:              id,
		Title:           "Geography",
		DurationMinutes: core.DefaultDurationMinutes,
		Source:          core.SourceManual,
		SavedAt:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Questions: []core.Question{{
			ID:             "q1",
			Text:           "Capital of India?",
			Kind:           core.KindSingle,
			Options:        core.Options{"Mumbai", "Delhi"},
			CorrectAnswers: []core.Letter{core.LetterB},
		}},
	}
}

func TestMemory_SaveAndList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	exams, err := m.ListExams(ctx)
	if err != nil || len(exams) != 0 {
		t.Fatalf("ListExams on empty store = %v, %v", exams, err)
	}

	if err := m.SaveExam(ctx, sampleExam("e1")); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveExam(ctx, sampleExam("e2")); err != nil {
		t.Fatal(err)
	}

	exams, err = m.ListExams(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(exams) != 2 || exams[0].ID != "e1" || exams[1].ID != "e2" {
		t.Errorf("ListExams = %+v, want e1 then e2", exams)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	exam := sampleExam("e1")
	if err := m.SaveExam(ctx, exam); err != nil {
		t.Fatal(err)
	}
	exam.Questions[0].Text = "changed by caller"

	exams, _ := m.ListExams(ctx)
	exams[0].Questions[0].Text = "changed by reader"

	again, _ := m.ListExams(ctx)
	if got := again[0].Questions[0].Text; got != "Capital of India?" {
		t.Errorf("stored question text = %q, want original", got)
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	if err := m.SaveExam(ctx, sampleExam("e1")); err == nil {
		t.Error("SaveExam with cancelled context should fail")
	}
	if _, err := m.ListExams(ctx); err == nil {
		t.Error("ListExams with cancelled context should fail")
	}
}

func TestLetters(t *testing.T) {
	letters := []core.Letter{core.LetterA, core.LetterC}
	s := joinLetters(letters)
	if s != "A|C" {
		t.Errorf("joinLetters = %q, want A|C", s)
	}
	got := splitLetters(s)
	if len(got) != 2 || got[0] != core.LetterA || got[1] != core.LetterC {
		t.Errorf("splitLetters(%q) = %v", s, got)
	}
	if got := splitLetters(""); len(got) != 0 {
		t.Errorf("splitLetters(\"\") = %v, want empty", got)
	}
}
