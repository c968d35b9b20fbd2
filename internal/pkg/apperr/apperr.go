package apperr

import "errors"

type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindValidation Kind = "VALIDATION_ERROR"
	KindInternal   Kind = "INTERNAL_ERROR"
)

// Error is a failure with a machine-checkable kind. A kind-only Error
// (empty Message) matches every Error of the same kind under errors.Is;
// otherwise kind and message must both match.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

var (
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrValidation = &Error{Kind: KindValidation}
)

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if t.Err != nil || t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Wrap attaches a cause while keeping kind and message of base.
func Wrap(base *Error, cause error) *Error {
	return &Error{Kind: base.Kind, Message: base.Message, Fields: base.Fields, Err: cause}
}

// KindOf reports the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldsOf returns validation field details carried by err, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
