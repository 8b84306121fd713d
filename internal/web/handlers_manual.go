package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/exampro/internal/core"
	"github.com/JonMunkholm/exampro/internal/logging"
	"github.com/JonMunkholm/exampro/internal/web/templates"
)

// questionResponse is the JSON body of a successful add.
type questionResponse struct {
	Question core.Question           `json:"question"`
	Session  core.ManualSessionState `json:"session"`
	Notice   core.Notice             `json:"notice"`
}

func (s *Server) manualSession(w http.ResponseWriter, r *http.Request) (*core.ManualSession, bool) {
	sess, err := s.sessions.Manual(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateManualSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.NewManual()
	logging.FromContext(r.Context()).Info("manual session created", "session_id", sess.ID())
	writeJSON(w, http.StatusCreated, sess.State())
}

func (s *Server) handleGetManualSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.manualSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

func (s *Server) handleDeleteManualSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.CloseManual(chi.URLParam(r, "sessionID")); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetManualInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.manualSession(w, r)
	if !ok {
		return
	}
	var info core.ExamInfo
	if err := decodeJSON(r, &info); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	sess.SetInfo(info)
	writeJSON(w, http.StatusOK, sess.State())
}

// handleNewDraft returns an empty draft for ?type=, single by default.
func (s *Server) handleNewDraft(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.manualSession(w, r); !ok {
		return
	}

	kind := core.KindSingle
	if raw := r.URL.Query().Get("type"); raw != "" {
		k, ok := core.ParseKind(raw)
		if !ok {
			err := fmt.Errorf("%w: unknown question type %q", core.ErrInvalidRequest, raw)
			s.respondError(w, r, err, statusFor(err))
			return
		}
		kind = k
	}
	writeJSON(w, http.StatusOK, core.DraftForKind(kind))
}

func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.manualSession(w, r)
	if !ok {
		return
	}

	var draft core.QuestionDraft
	if err := decodeJSON(r, &draft); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	q, notice, err := sess.AddQuestion(draft)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		renderComponent(w, r, http.StatusCreated, templates.Toast(notice))
		return
	}
	writeJSON(w, http.StatusCreated, questionResponse{Question: q, Session: sess.State(), Notice: notice})
}

func (s *Server) handleRemoveManualQuestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.manualSession(w, r)
	if !ok {
		return
	}

	notice, err := sess.RemoveQuestion(chi.URLParam(r, "questionID"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondAction(w, r, http.StatusOK, sess.State(), notice)
}

func (s *Server) handleSaveManualSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.manualSession(w, r)
	if !ok {
		return
	}

	exam, notice, err := sess.Save(r.Context(), s.store)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("exam saved",
		"exam_id", exam.ID,
		"source", exam.Source,
		"questions", len(exam.Questions),
	)
	if isHTMX(r) {
		renderComponent(w, r, http.StatusCreated, templates.Toast(notice))
		return
	}
	writeJSON(w, http.StatusCreated, saveResponse{Exam: exam, Notice: notice})
}
