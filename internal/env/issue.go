package env

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultIssueURL is the "new issue" page for the extension.
const DefaultIssueURL = "https://github.com/vknabel/vscode-apple-swift-format/issues/new"

// HostError is an error reported by the host editor or the formatter
// process, carrying an optional numeric code and stack trace.
type HostError struct {
	Number  int
	Message string
	Trace   string
}

func (e *HostError) Error() string {
	return e.Message
}

// Code returns the numeric error code.
func (e *HostError) Code() int {
	return e.Number
}

// Stack returns the stack trace, if any.
func (e *HostError) Stack() string {
	return e.Trace
}

type coder interface {
	Code() int
}

type stacker interface {
	Stack() string
}

// IssueTitle returns the title of an issue report for err. Escaped
// newline sequences in the message collapse to a single space.
func IssueTitle(err error) string {
	message := strings.ReplaceAll(err.Error(), `\n`, " ")
	var c coder
	if errors.As(err, &c) {
		return fmt.Sprintf("Error %d: %s", c.Code(), message)
	}
	return "Error: " + message
}

// IssueBody returns the body of an issue report for err: its stack trace,
// or a JSON rendering of the error when there is none.
func IssueBody(err error) string {
	var b strings.Builder
	b.WriteString("swift-format returned the following error:\n\n")

	var s stacker
	if errors.As(err, &s) && s.Stack() != "" {
		b.WriteString("```\n")
		b.WriteString(s.Stack())
		b.WriteString("\n```\n")
		return b.String()
	}

	b.WriteString("```json\n")
	b.WriteString(serializeError(err))
	b.WriteString("\n```\n")
	return b.String()
}

type serializedError struct {
	Code    *int   `json:"code,omitempty"`
	Message string `json:"message"`
}

func serializeError(err error) string {
	out := serializedError{Message: err.Error()}
	var c coder
	if errors.As(err, &c) {
		code := c.Code()
		out.Code = &code
	}
	data, mErr := json.MarshalIndent(out, "", "  ")
	if mErr != nil {
		return fmt.Sprintf("%+v", err)
	}
	return string(data)
}

// IssueURL returns a pre-filled "new issue" URL for err.
func (e *Environment) IssueURL(err error) string {
	q := url.Values{}
	q.Set("title", IssueTitle(err))
	q.Set("body", IssueBody(err))
	return e.issueURL + "?" + q.Encode()
}

// ReportIssueForError opens a pre-filled issue report for err.
func (e *Environment) ReportIssueForError(ctx context.Context, err error) error {
	e.logger.Info("reporting issue", "error", err)
	return e.OpenURL(ctx, e.IssueURL(err))
}
