package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/exampro/internal/core"
	"github.com/JonMunkholm/exampro/internal/logging"
	"github.com/JonMunkholm/exampro/internal/web/templates"
)

// multipartOverhead is allowed on top of the file size for form framing.
const multipartOverhead = 64 * 1024

// importResponse is the JSON body of an import request.
type importResponse struct {
	Session core.CSVSessionState `json:"session"`
	Notice  core.Notice          `json:"notice"`
	Valid   bool                 `json:"valid"`
}

// saveResponse is the JSON body of a successful save.
type saveResponse struct {
	Exam   core.Exam   `json:"exam"`
	Notice core.Notice `json:"notice"`
}

// csvSession resolves the {sessionID} URL parameter, writing the error
// response itself when the session does not exist.
func (s *Server) csvSession(w http.ResponseWriter, r *http.Request) (*core.CSVSession, bool) {
	sess, err := s.sessions.CSV(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateCSVSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.NewCSV()
	logging.FromContext(r.Context()).Info("csv session created", "session_id", sess.ID())
	writeJSON(w, http.StatusCreated, sess.State())
}

func (s *Server) handleGetCSVSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.csvSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

func (s *Server) handleDeleteCSVSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.CloseCSV(chi.URLParam(r, "sessionID")); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetCSVTitle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.csvSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	sess.SetTitle(body.Title)
	writeJSON(w, http.StatusOK, sess.State())
}

// handleImportCSV runs an uploaded question file through the import
// pipeline. A rejected file is not a request error: the session records the
// validation errors and the response carries them with status 422.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.csvSession(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	if err := s.imports.Acquire(ctx); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer s.imports.Release()

	text, fileName, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	log := logging.WithFields(ctx, "session_id", sess.ID(), "file", fileName)
	log.Info("import started", "bytes", len(text))

	result, notice := sess.Import(fileName, text)
	log.Info("import finished",
		"valid", result.Valid,
		"questions", len(result.Records),
		"errors", len(result.Errors),
	)

	status := http.StatusOK
	if !result.Valid || len(result.Records) == 0 {
		status = http.StatusUnprocessableEntity
	}

	state := sess.State()
	if isHTMX(r) {
		renderComponent(w, r, status, templates.ImportResult(state, notice))
		return
	}
	writeJSON(w, status, importResponse{Session: state, Notice: notice, Valid: result.Valid && len(result.Records) > 0})
}

// readUpload extracts the "file" form field and returns its text and base name.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, string, error) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return "", "", fmt.Errorf("%w: exceeds %d bytes", core.ErrFileTooLarge, maxSize)
		}
		return "", "", fmt.Errorf("%w: %v", core.ErrInvalidRequest, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", core.ErrNoFile
	}
	defer file.Close()

	if err := core.CheckFileType(header.Filename, header.Header.Get("Content-Type")); err != nil {
		return "", "", err
	}

	text, err := core.ReadSource(file, maxSize)
	if err != nil {
		return "", "", err
	}
	return text, filepath.Base(header.Filename), nil
}

func (s *Server) handleRemoveCSVQuestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.csvSession(w, r)
	if !ok {
		return
	}

	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		err = fmt.Errorf("%w: index %q", core.ErrQuestionNotFound, raw)
		s.respondError(w, r, err, statusFor(err))
		return
	}

	notice, err := sess.RemoveQuestion(index)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondAction(w, r, http.StatusOK, sess.State(), notice)
}

func (s *Server) handleSaveCSVSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.csvSession(w, r)
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
