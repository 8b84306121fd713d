// Package core provides the business logic for exam authoring.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
//	VAL001 - Question validation failed        Patterns: "row "
//	VAL002 - Question draft is incomplete      Patterns: "question text is required", "options a and b", "correct answer"
//	VAL003 - Missing column                    Patterns: "missing required column"
//	VAL004 - Invalid draft field               Patterns: "invalid question draft"
//
//	FILE001 - File too large                   Patterns: "file too large"
//	FILE002 - Not a CSV file                   Patterns: "invalid file type"
//	FILE003 - No file selected                 Patterns: "no file provided"
//	FILE004 - Empty file                       Patterns: "empty file"
//	FILE005 - No questions found               Patterns: "no questions found"
//
//	SES001 - Session not found                 Patterns: "session not found"
//	SES002 - Question not found                Patterns: "question not found"
//
//	EXM001 - Missing exam title                Patterns: "missing exam title"
//	EXM002 - No questions to save              Patterns: "no questions to save"
//	EXM003 - Exam could not be stored          Patterns: "save exam"
//
//	IMP001 - System busy                       Patterns: "too many imports"
//	REQ001 - Request cancelled                 Patterns: "context canceled"
//	REQ002 - Request timed out                 Patterns: "context deadline exceeded"
//	REQ003 - Malformed request                 Patterns: "invalid request"
//	RATE001 - Rate limited                     Patterns: "rate limit"
//	AUTH001 - Unknown role                     Patterns: "unknown role"
//
//	ERR000 - Unknown error (fallback)
//
// Patterns are matched case-insensitively with strings.Contains. The first
// matching pattern wins, so specific patterns come before general ones.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Errors surfaced by authoring sessions.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrMissingTitle     = errors.New("missing exam title")
	ErrNoQuestions      = errors.New("no questions to save")
	ErrNoFile           = errors.New("no file provided")
	ErrNoRows           = errors.New("no questions found in file")
	ErrInvalidRequest   = errors.New("invalid request")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Files
	{"file too large", UserMessage{"File exceeds maximum size limit", "Split the questions into smaller files", "FILE001"}},
	{"invalid file type", UserMessage{"Invalid file type", "Please upload a CSV file", "FILE002"}},
	{"no file provided", UserMessage{"No file was selected", "Please select a CSV file to upload", "FILE003"}},
	{"empty file", UserMessage{"The uploaded file is empty", "Please upload a CSV file with question rows", "FILE004"}},
	{"no questions found", UserMessage{"No questions were found in the file", "Add question rows below the header line", "FILE005"}},

	// Sessions
	{"session not found", UserMessage{"Authoring session not found", "The session may have expired. Please start again", "SES001"}},
	{"question not found", UserMessage{"Question not found", "Refresh the question list and try again", "SES002"}},

	// Saving
	{"missing exam title", UserMessage{"Missing Exam Title", "Please enter an exam title before saving.", "EXM001"}},
	{"no questions to save", UserMessage{"No Questions", "Please add at least one question before saving the exam.", "EXM002"}},
	{"save exam", UserMessage{"The exam could not be saved", "Please try again in a few moments", "EXM003"}},

	// Validation
	{"row ", UserMessage{"CSV Validation Errors", "Correct the listed rows and upload the file again", "VAL001"}},
	{"missing required column", UserMessage{"Required column is missing from CSV", "Download the template and match its header row", "VAL003"}},
	{"invalid question draft", UserMessage{"Validation Error", "Check the highlighted fields", "VAL004"}},
	{"question text is required", UserMessage{"Validation Error", "Question text is required", "VAL002"}},
	{"options a and b", UserMessage{"Validation Error", "At least options A and B are required", "VAL002"}},
	{"correct answer", UserMessage{"Validation Error", "Select the correct answer for the question type", "VAL002"}},

	// Requests
	{"too many imports", UserMessage{"System is busy processing other imports", "Please wait a moment and try again", "IMP001"}},
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "REQ001"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Please try again", "REQ002"}},
	{"invalid request", UserMessage{"The request could not be read", "Check the submitted fields and try again", "REQ003"}},
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
	{"unknown role", UserMessage{"Unknown role", "Choose admin, super-admin, or student", "AUTH001"}},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first pattern match, or ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// ErrorNotice turns an error into a destructive notice.
func ErrorNotice(err error) Notice {
	msg := MapError(err)
	return Notice{Title: msg.Message, Description: msg.Action, Variant: NoticeDestructive}
}
