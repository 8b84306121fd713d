package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/exampro/internal/core"
	"github.com/JonMunkholm/exampro/internal/web/templates"
)

// actionResponse is returned by handlers that change session state.
type actionResponse[T any] struct {
	Session T           `json:"session"`
	Notice  core.Notice `json:"notice"`
}

// respondAction writes a state change as a toast fragment for HTMX or JSON.
func respondAction[T any](w http.ResponseWriter, r *http.Request, status int, state T, notice core.Notice) {
	if isHTMX(r) {
		renderComponent(w, r, status, templates.Toast(notice))
		return
	}
	writeJSON(w, status, actionResponse[T]{Session: state, Notice: notice})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
		"imports":  s.imports.Status(),
	})
}

// handleDownloadTemplate serves the sample question file.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", core.TemplateContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+core.TemplateFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(core.SampleCSV))
}

// handleDashboard returns the landing page for a role.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	role := core.Role(chi.URLParam(r, "role"))
	path, err := core.DashboardPath(role)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
	}
	writeJSON(w, http.StatusOK, map[string]string{"role": string(role), "path": path})
}

// handleListExams returns every saved exam.
func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := s.store.ListExams(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exams": exams})
}
