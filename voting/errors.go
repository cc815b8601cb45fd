// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a failure for the caller.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindBadRequest
	KindUnprocessable
	KindUnknownChoice
	KindUnauthorized
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	case KindUnprocessable:
		return "unprocessable"
	case KindUnknownChoice:
		return "unknown_choice"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "unavailable"
	}
	return "internal"
}

// HTTPStatus maps the kind onto a response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindBadRequest, KindUnknownChoice:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Client-visible messages.
const (
	MsgAlreadyVoted      = "already voted"
	MsgNotVoted          = "not voted yet"
	MsgSelectedRequired  = "selected field is required"
	MsgInvalidVoteCount  = "invalid number of votes"
	MsgNotRetractable    = "this poll is not vote retractable"
	MsgUnknownChoice     = "unknown choice order"
	MsgPollNotFound      = "poll not found"
	MsgChoiceNotFound    = "choice not found"
	MsgUserNotFound      = "user not found"
	MsgPermissionDenied  = "you do not have permission to perform this action"
	MsgPrivateAccount    = "this account is private"
	MsgResultsHidden     = "results of this poll are not visible to you"
	MsgStoreUnavailable  = "service temporarily unavailable"
	MsgNotAuthenticated  = "authentication credentials were not provided"
	MsgInvalidCredential = "invalid authentication token"
)

// Error is a classified failure. Err holds the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error with a client-visible message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Unavailable wraps a storage failure.
func Unavailable(err error, context string) *Error {
	return &Error{Kind: KindUnavailable, Message: MsgStoreUnavailable, Err: errors.Wrap(err, context)}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
