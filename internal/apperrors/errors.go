package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindStorage    Kind = "storage"
)

// InternalMessage is the only text a storage failure ever exposes to callers.
const InternalMessage = "Internal server error"

// HTTPStatus maps a kind to the status code handlers respond with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// E is an application error with a public message and an optional cause.
type E struct {
	Kind    Kind
	Message string
	Field   string
	Op      string
	Err     error
}

func (e *E) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *E) Unwrap() error { return e.Err }

func Validation(field, msg string) *E {
	return &E{Kind: KindValidation, Field: field, Message: msg}
}

func Auth(msg string) *E {
	return &E{Kind: KindAuth, Message: msg}
}

func NotFound(msg string) *E {
	return &E{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *E {
	return &E{Kind: KindConflict, Message: msg}
}

// Storage wraps a driver fault. The cause is kept for server-side logs only.
func Storage(op string, err error) *E {
	return &E{Kind: KindStorage, Op: op, Message: "storage failure", Err: err}
}

// KindOf reports the kind of err. Errors that are not *E are storage faults.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func HTTPStatus(err error) int {
	return KindOf(err).HTTPStatus()
}

// PublicMessage returns the text safe to send to a client.
func PublicMessage(err error) string {
	var e *E
	if !errors.As(err, &e) || e.Kind == KindStorage {
		return InternalMessage
	}
	return e.Message
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var e *E
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
