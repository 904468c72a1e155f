package save

import (
	"errors"
	"fmt"

	"jobeditor/internal/domain"
)

// Kind classifies a save failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindPersist    Kind = "persist"
	KindStorage    Kind = "storage"
)

// Messages shown when no more specific text is available.
const (
	MsgValidation    = "Please fix the highlighted fields before saving"
	MsgAuth          = "Your session has expired. Please sign in again"
	MsgPersistFailed = "Failed to update job posting. Please try again"
	MsgUpdated       = "Job posting updated successfully"
	MsgCreated       = "Job posting created successfully"
)

var (
	// ErrSaveInFlight is returned when a confirm arrives while a save is running.
	ErrSaveInFlight = errors.New("save: a save is already in progress")
	// ErrInvalidState is returned when an action does not apply to the current state.
	ErrInvalidState = errors.New("save: action not allowed in current state")
)

// Error is the single failure shape returned by the coordinator.
type Error struct {
	Kind    Kind
	Message string
	Fields  []domain.FieldError
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, msg string, fields []domain.FieldError, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Fields: fields, Cause: cause}
}

// KindOf returns the kind of err, or "" when err is not a *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// persistFailure maps a persister error to the user-facing failure.
func persistFailure(err error) *Error {
	var rejected *domain.RejectedError
	switch {
	case errors.As(err, &rejected) && rejected.Message != "":
		return newError(KindPersist, rejected.Message, rejected.Fields, err)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		return newError(KindAuth, MsgAuth, nil, err)
	default:
		return newError(KindPersist, MsgPersistFailed, nil, err)
	}
}
