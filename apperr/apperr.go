// Package apperr defines the domain error kinds shared across services.
// Handlers map each kind to exactly one HTTP status; infrastructure
// failures stay plain errors and surface as 500s.
package apperr

import "errors"

// Kind classifies a domain error.
type Kind int

const (
	// KindUnknown marks errors that carry no domain meaning.
	KindUnknown Kind = iota
	// KindNotFound: a referenced entity does not exist.
	KindNotFound
	// KindAuthorization: the caller lacks standing for the operation.
	KindAuthorization
	// KindInvariant: the operation would violate a uniqueness or
	// business invariant (duplicate like, duplicate membership, ...).
	KindInvariant
)

// Error is a domain error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound returns a not-found domain error.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Authorization returns an authorization domain error.
func Authorization(msg string) error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

// Invariant returns an invariant-violation domain error.
func Invariant(msg string) error {
	return &Error{Kind: KindInvariant, Message: msg}
}

// KindOf reports the kind of err, or KindUnknown for non-domain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsAuthorization reports whether err is an authorization domain error.
func IsAuthorization(err error) bool {
	return KindOf(err) == KindAuthorization
}

// IsInvariant reports whether err is an invariant-violation domain error.
func IsInvariant(err error) bool {
	return KindOf(err) == KindInvariant
}
