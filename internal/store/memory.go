// Package store persists saved exams.
//
// Memory keeps exams for the life of the process and is the default.
// Postgres writes them to a database when one is configured.
package store

import (
	"context"
	"sync"

	"github.com/JonMunkholm/exampro/internal/core"
)

// Memory is an in-process exam store.
type Memory struct {
	mu    sync.RWMutex
	exams []core.Exam
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

// SaveExam appends exam.
func (m *Memory) SaveExam(ctx context.Context, exam core.Exam) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	exam.Questions = append([]core.Question{}, exam.Questions...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.exams = append(m.exams, exam)
	return nil
}

// ListExams returns saved exams, oldest first.
func (m *Memory) ListExams(ctx context.Context) ([]core.Exam, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Exam, len(m.exams))
	for i, e := range m.exams {
		e.Questions = append([]core.Question{}, e.Questions...)
		out[i] = e
	}
	return out, nil
}

var _ core.ExamStore = (*Memory)(nil)
