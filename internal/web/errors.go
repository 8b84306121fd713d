package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered as an HTMX fragment or as JSON

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/exampro/internal/core"
	"github.com/JonMunkholm/exampro/internal/logging"
	"github.com/JonMunkholm/exampro/internal/web/templates"
)

var errRateLimited = errors.New("rate limit exceeded")

// maxJSONBody caps JSON request bodies (1MB).
const maxJSONBody = 1 << 20

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Action  string      `json:"action,omitempty"`
	Code    string      `json:"code"`
	Details []string    `json:"details,omitempty"`
	Notice  core.Notice `json:"notice"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var de *core.DraftError
	switch {
	case errors.As(err, &de):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, core.ErrQuestionNotFound),
		errors.Is(err, core.ErrUnknownRole):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrInvalidFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrMissingTitle),
		errors.Is(err, core.ErrNoQuestions),
		errors.Is(err, core.ErrNoRows),
		errors.Is(err, core.ErrAnswerEmptyOption),
		errors.Is(err, core.ErrDuplicateAnswer),
		errors.Is(err, core.ErrNoCorrectAnswer),
		errors.Is(err, core.ErrTooManyAnswers):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNoFile),
		errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, core.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// details lists the individual problems behind err, if any.
func details(err error) []string {
	var de *core.DraftError
	if errors.As(err, &de) {
		return de.Messages
	}
	return nil
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an HTMX fragment or
// JSON depending on the request.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	log := logging.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error("request error",
			"path", r.URL.Path,
			"method", r.Method,
			"status", statusCode,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	} else {
		log.Warn("request rejected",
			"path", r.URL.Path,
			"method", r.Method,
			"status", statusCode,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	}

	if isHTMX(r) {
		renderComponent(w, r, statusCode, templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code, details(err)))
		return
	}
	respondErrorJSON(w, userMsg, details(err), statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, details []string, statusCode int) {
	notice := core.Notice{Title: msg.Message, Description: msg.Action, Variant: core.NoticeDestructive}
	if len(details) > 0 {
		notice.Description = strings.Join(details, ", ")
	}
	writeJSON(w, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
		Details: details,
		Notice:  notice,
	})
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidRequest, err)
	}
	return nil
}
