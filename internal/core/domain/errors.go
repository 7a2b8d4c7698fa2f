package domain

import "errors"

// ErrTransport marks a failed page fetch against the upstream feature
// service. Retrieval is all-or-nothing: one failed page fails the lookup.
var ErrTransport = errors.New("feature service transport failure")

// ErrMalformedPage marks a response document that could not be parsed.
var ErrMalformedPage = errors.New("malformed feature service response")

// ValidationError reports a malformed street fragment. It is fatal for the
// whole lookup; there is no partial-result mode.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid fragment: " + e.Field + " " + e.Reason
}
