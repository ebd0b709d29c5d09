package insights

import "errors"

// Kind classifies why an insights request could not use the model's answer.
type Kind string

const (
	// KindServiceUnavailable means no model credential is configured.
	KindServiceUnavailable Kind = "service_unavailable"
	// KindUpstream means the model call failed, timed out or returned no text.
	KindUpstream Kind = "upstream_error"
	// KindMalformedResponse means the completion was not a valid report.
	KindMalformedResponse Kind = "malformed_response"
)

// Error is the failure variant of every step downstream of the aggregates.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Unavailable wraps err as a KindServiceUnavailable error.
func Unavailable(err error) *Error {
	return &Error{Kind: KindServiceUnavailable, Err: err}
}

// Upstream wraps err as a KindUpstream error.
func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Err: err}
}

// Malformed wraps err as a KindMalformedResponse error.
func Malformed(err error) *Error {
	return &Error{Kind: KindMalformedResponse, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// classify makes sure err is an *Error, treating unknown failures as upstream.
func classify(err error) *Error {
	var ie *Error
	if errors.As(err, &ie) {
		return ie
	}
	return Upstream(err)
}
