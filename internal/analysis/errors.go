// Package analysis holds the failure taxonomy shared by every skill. All
// extraction, decoding and backend failures are classified here so handlers
// and panels never deal with raw transport errors.
package analysis

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindMissingCredential means the backend API key is not configured.
	// Surfaced before any network call.
	KindMissingCredential ErrorKind = "missing_credential"

	// KindUnsupportedFormat means the input file type is not one of the
	// recognized set. No backend call is made.
	KindUnsupportedFormat ErrorKind = "unsupported_format"

	// KindMalformedInput means input decoding failed (bad base64,
	// unreadable file).
	KindMalformedInput ErrorKind = "malformed_input"

	// KindFetchFailed means a remote URL was unreachable or returned an
	// error status.
	KindFetchFailed ErrorKind = "fetch_failed"

	// KindQuotaExceeded means the backend reported billing or quota
	// exhaustion. Kept distinct so callers can show an actionable message.
	KindQuotaExceeded ErrorKind = "quota_exceeded"

	// KindBackendError covers every other non-2xx backend response.
	KindBackendError ErrorKind = "backend_error"
)

// Error is a classified failure. Message is safe to show to a user; Detail
// carries raw diagnostics (e.g. a backend response body) for logging only.
type Error struct {
	Kind    ErrorKind
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewErrorWithDetail(kind ErrorKind, message, detail string) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// IsKind reports whether err is a classified failure of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var classified *Error
	return errors.As(err, &classified) && classified.Kind == kind
}
