// Package core provides the business logic for exam authoring.
//
// This package contains all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # CSV Import Pipeline
//
// A question file flows through three stages:
//
//  1. [Tokenizer] splits raw text into [RawRow] values keyed by header name
//  2. [ValidateRows] applies per-question-type rules to every row
//  3. [MapRows] turns the rows into [QuestionRecord] values
//
// [ParseQuestions] runs the whole pipeline. Validation is all-or-nothing: a
// single bad row voids the batch and no records are returned.
//
//	result := core.ParseQuestions(text)
//	if !result.Valid {
//	    for _, e := range result.ErrorStrings() {
//	        fmt.Println(e)
//	    }
//	}
//
// # Authoring Sessions
//
// Each authoring flow owns an explicit state object, created fresh and
// discarded when the author navigates away:
//
//   - [CSVSession]: upload, preview, remove, save
//   - [ManualSession]: exam info, question drafts, remove, save
//
// [Sessions] keeps them by ID and expires idle ones.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VAL001-VAL004: Question validation errors
//   - FILE001-FILE005: File errors (size, type, encoding, empty)
//   - SES001-SES002: Session errors
//   - EXM001-EXM003: Exam save errors
//   - IMP001, REQ001-REQ002, RATE001, AUTH001: Import and request errors
package core
