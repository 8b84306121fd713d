package core

// session.go holds the per-author state of the two exam-authoring flows.
//
// A session is created fresh when an author opens a form and dropped when
// they leave; nothing is shared between sessions. Each session guards its own
// state with a mutex, so a second import into the same session simply
// replaces the first (last write wins).

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CSVSessionState is a snapshot of a CSV authoring session.
type CSVSessionState struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	FileName  string           `json:"fileName"`
	Questions []QuestionRecord `json:"questions"`
	Errors    []string         `json:"errors"`
}

// CSVSession is the state behind the CSV exam form.
type CSVSession struct {
	id string

	mu        sync.Mutex
	title     string
	fileName  string
	questions []QuestionRecord
	errors    []string
}

// NewCSVSession returns an empty session.
func NewCSVSession() *CSVSession {
	return &CSVSession{id: uuid.NewString()}
}

// ID returns the session identifier.
func (s *CSVSession) ID() string { return s.id }

// SetTitle sets the exam title.
func (s *CSVSession) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// Import parses text and replaces the session's questions and errors with
// the outcome. Invalid files leave the session with no questions.
func (s *CSVSession) Import(fileName, text string) (ImportResult, Notice) {
	result := ParseQuestions(text)

	s.mu.Lock()
	s.fileName = fileName
	s.questions = result.Records
	s.errors = result.ErrorStrings()
	s.mu.Unlock()

	if !result.Valid {
		return result, ErrorNotice(result.Errors[0])
	}
	if len(result.Records) == 0 {
		return result, ErrorNotice(ErrNoRows)
	}
	return result, Notice{
		Title:       "CSV Uploaded Successfully",
		Description: fmt.Sprintf("%d questions loaded from %s", len(result.Records), fileName),
		Variant:     NoticeDefault,
	}
}

// RemoveQuestion drops the question at the 0-based index.
func (s *CSVSession) RemoveQuestion(index int) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.questions) {
		return ErrorNotice(ErrQuestionNotFound), fmt.Errorf("%w: index %d", ErrQuestionNotFound, index)
	}
	s.questions = append(s.questions[:index:index], s.questions[index+1:]...)
	return removedNotice(), nil
}

// State returns a copy of the session's current state.
func (s *CSVSession) State() CSVSessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CSVSessionState{
		ID:        s.id,
		Title:     s.title,
		FileName:  s.fileName,
		Questions: append([]QuestionRecord{}, s.questions...),
		Errors:    append([]string{}, s.errors...),
	}
}

// Save stores the exam and resets the session.
func (s *CSVSession) Save(ctx context.Context, store ExamStore) (Exam, Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.title) == "" {
		return Exam{}, ErrorNotice(ErrMissingTitle), ErrMissingTitle
	}
	if len(s.questions) == 0 {
		return Exam{}, ErrorNotice(ErrNoQuestions), ErrNoQuestions
	}

	questions := make([]Question, len(s.questions))
	for i, rec := range s.questions {
		q, err := rec.ToQuestion()
		if err != nil {
			err = fmt.Errorf("question %d: %w", i+1, err)
			return Exam{}, ErrorNotice(err), err
		}
		q.ID = uuid.NewString()
		questions[i] = q
	}

	exam := Exam{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(s.title),
		DurationMinutes: DefaultDurationMinutes,
		Source:          SourceCSV,
		Questions:       questions,
		SavedAt:         time.Now().UTC(),
	}
	if err := store.SaveExam(ctx, exam); err != nil {
		err = fmt.Errorf("save exam: %w", err)
		return Exam{}, ErrorNotice(err), err
	}

	s.title, s.fileName, s.questions, s.errors = "", "", nil, nil
	return exam, savedNotice(exam), nil
}

// ManualSessionState is a snapshot of a manual authoring session.
type ManualSessionState struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"durationMinutes"`
	Questions       []Question `json:"questions"`
}

// ExamInfo is the editable header of a manual exam.
type ExamInfo struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ManualSession is the state behind the manual exam form.
type ManualSession struct {
	id string

	mu        sync.Mutex
	info      ExamInfo
	questions []Question
}

// NewManualSession returns an empty session with the default duration.
func NewManualSession() *ManualSession {
	return &ManualSession{
		id:   uuid.NewString(),
		info: ExamInfo{DurationMinutes: DefaultDurationMinutes},
	}
}

// ID returns the session identifier.
func (s *ManualSession) ID() string { return s.id }

// SetInfo replaces the exam header. A non-positive duration falls back to
// DefaultDurationMinutes.
func (s *ManualSession) SetInfo(info ExamInfo) {
	if info.DurationMinutes <= 0 {
		info.DurationMinutes = DefaultDurationMinutes
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = info
}

// AddQuestion validates draft and appends it.
func (s *ManualSession) AddQuestion(draft QuestionDraft) (Question, Notice, error) {
	q, err := draft.ToQuestion()
	if err != nil {
		return Question{}, draftNotice(err), err
	}

	s.mu.Lock()
	s.questions = append(s.questions, q)
	n := len(s.questions)
	s.mu.Unlock()

	return q, Notice{
		Title:       "Question Added",
		Description: fmt.Sprintf("Question %d has been added successfully.", n),
		Variant:     NoticeDefault,
	}, nil
}

func draftNotice(err error) Notice {
	if de, ok := err.(*DraftError); ok {
		return Notice{
			Title:       "Validation Error",
			Description: strings.Join(de.Messages, ", "),
			Variant:     NoticeDestructive,
		}
	}
	return ErrorNotice(err)
}

// RemoveQuestion drops the question with the given ID.
func (s *ManualSession) RemoveQuestion(id string) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i:i], s.questions[i+1:]...)
			return removedNotice(), nil
		}
	}
	return ErrorNotice(ErrQuestionNotFound), fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
}

// State returns a copy of the session's current state.
func (s *ManualSession) State() ManualSessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ManualSessionState{
		ID:              s.id,
		Title:           s.info.Title,
		Description:     s.info.Description,
		DurationMinutes: s.info.DurationMinutes,
		Questions:       append([]Question{}, s.questions...),
	}
}

// Save stores the exam and resets the session.
func (s *ManualSession) Save(ctx context.Context, store ExamStore) (Exam, Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.info.Title) == "" {
		return Exam{}, ErrorNotice(ErrMissingTitle), ErrMissingTitle
	}
	if len(s.questions) == 0 {
		return Exam{}, ErrorNotice(ErrNoQuestions), ErrNoQuestions
	}

	exam := Exam{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(s.info.Title),
		Description:     strings.TrimSpace(s.info.Description),
		DurationMinutes: s.info.DurationMinutes,
		Source:          SourceManual,
		Questions:       append([]Question{}, s.questions...),
		SavedAt:         time.Now().UTC(),
	}
	if err := store.SaveExam(ctx, exam); err != nil {
		err = fmt.Errorf("save exam: %w", err)
		return Exam{}, ErrorNotice(err), err
	}

	s.info = ExamInfo{DurationMinutes: DefaultDurationMinutes}
	s.questions = nil
	return exam, savedNotice(exam), nil
}

func removedNotice() Notice {
	return Notice{
		Title:       "Question Removed",
		Description: "Question has been removed from the exam.",
		Variant:     NoticeDefault,
	}
}

func savedNotice(exam Exam) Notice {
	return Notice{
		Title:       "Exam Saved Successfully",
		Description: fmt.Sprintf("\"%s\" has been saved with %d questions.", exam.Title, len(exam.Questions)),
		Variant:     NoticeDefault,
	}
}
