package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/exampro/internal/core"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS exams (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	duration_minutes INTEGER NOT NULL,
	source           TEXT NOT NULL,
	saved_at         TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS exam_questions (
	exam_id         TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	id              TEXT NOT NULL,
	text            TEXT NOT NULL,
	type            TEXT NOT NULL,
	option_a        TEXT NOT NULL,
	option_b        TEXT NOT NULL,
	option_c        TEXT NOT NULL DEFAULT '',
	option_d        TEXT NOT NULL DEFAULT '',
	correct_answers TEXT NOT NULL,
	image_name      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (exam_id, position)
);
`

var questionColumns = []string{
	"exam_id", "position", "id", "text", "type",
	"option_a", "option_b", "option_c", "option_d",
	"correct_answers", "image_name",
}

// Postgres stores exams in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool. Call EnsureSchema before first use.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the exam tables if they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create exam schema: %w", err)
	}
	return nil
}

// SaveExam writes the exam and its questions in one transaction.
func (p *Postgres) SaveExam(ctx context.Context, exam core.Exam) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	_, err = tx.Exec(ctx,
		`INSERT INTO exams (id, title, description, duration_minutes, source, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		exam.ID, exam.Title, exam.Description, exam.DurationMinutes, string(exam.Source), exam.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exam %s: %w", exam.ID, err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"exam_questions"}, questionColumns,
		pgx.CopyFromSlice(len(exam.Questions), func(i int) ([]any, error) {
			q := exam.Questions[i]
			return []any{
				exam.ID, i, q.ID, q.Text, string(q.Kind),
				q.Options[0], q.Options[1], q.Options[2], q.Options[3],
				joinLetters(q.CorrectAnswers), q.ImageName,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy questions for exam %s: %w", exam.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExams returns saved exams with their questions, oldest first.
func (p *Postgres) ListExams(ctx context.Context) ([]core.Exam, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, title, description, duration_minutes, source, saved_at
		 FROM exams ORDER BY saved_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exams: %w", err)
	}

	var exams []core.Exam
	index := make(map[string]int)
	for rows.Next() {
		var (
			e       core.Exam
			source  string
			savedAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.DurationMinutes, &source, &savedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		e.Source = core.ExamSource(source)
		e.SavedAt = savedAt.UTC()
		e.Questions = []core.Question{}
		index[e.ID] = len(exams)
		exams = append(exams, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exams: %w", err)
	}
	if len(exams) == 0 {
		return []core.Exam{}, nil
	}

	qrows, err := p.pool.Query(ctx,
		`SELECT exam_id, id, text, type, option_a, option_b, option_c, option_d, correct_answers, image_name
		 FROM exam_questions ORDER BY exam_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer qrows.Close()

	for qrows.Next() {
		var (
			examID, kind, answers string
			q                     core.Question
		)
		if err := qrows.Scan(&examID, &q.ID, &q.Text, &kind,
			&q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3],
			&answers, &q.ImageName); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		i, ok := index[examID]
		if !ok {
			continue
		}
		q.Kind = core.Kind(kind)
		q.CorrectAnswers = splitLetters(answers)
		exams[i].Questions = append(exams[i].Questions, q)
	}
	if err := qrows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	return exams, nil
}

func joinLetters(letters []core.Letter) string {
	parts := make([]string, len(letters))
	for i, l := range letters {
		parts[i] = string(l)
	}
	return strings.Join(parts, "|")
}

func splitLetters(s string) []core.Letter {
	var letters []core.Letter
	for _, tok := range strings.Split(s, "|") {
		if l, ok := core.ParseLetter(tok); ok {
			letters = append(letters, l)
		}
	}
	return letters
}

var _ core.ExamStore = (*Postgres)(nil)
