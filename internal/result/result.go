package result

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Keys of the domain errors a repository can report. Infrastructure errors are keyed
// by the type name of their root cause instead.
const (
	MissingEntity              = "MissingEntity"
	SoftDeletionNotIDeleteable = "SoftDeletionNotIDeleteable"
	EntityNotFound             = "EntityNotFound"
	Panic                      = "Panic"
)

type Error struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return e.Key + ": " + e.Message
}

// Result carries either a payload or an ordered list of errors. A failed result keeps
// the zero value of T as its payload.
type Result[T any] struct {
	ResultObject T       `json:"result"`
	Errors       []Error `json:"errors,omitempty"`
}

func New[T any](value T) *Result[T] {
	return &Result[T]{ResultObject: value}
}

func Fail[T any](key, message string) *Result[T] {
	r := &Result[T]{}
	return r.AddError(key, message)
}

// FromError builds a failed result out of an infrastructure error.
func FromError[T any](err error) *Result[T] {
	r := &Result[T]{}
	return r.AddErr(err)
}

// Propagate copies the errors of another result into a fresh failed result.
func Propagate[T, U any](from *Result[U]) *Result[T] {
	r := &Result[T]{}
	r.Errors = append(r.Errors, from.Errors...)
	return r
}

func (r *Result[T]) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Result[T]) Succeeded() bool {
	return !r.HasErrors()
}

func (r *Result[T]) AddError(key, message string) *Result[T] {
	r.Errors = append(r.Errors, Error{Key: key, Message: message})
	return r
}

func (r *Result[T]) AddErr(err error) *Result[T] {
	if err == nil {
		return r
	}
	r.Errors = append(r.Errors, ErrorFrom(err))
	return r
}

// Clear drops the payload, leaving the zero value in place.
func (r *Result[T]) Clear() *Result[T] {
	var zero T
	r.ResultObject = zero
	return r
}

// Err joins the collected errors, or returns nil for a successful result.
func (r *Result[T]) Err() error {
	if !r.HasErrors() {
		return nil
	}
	if len(r.Errors) == 1 {
		return r.Errors[0]
	}
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Error())
	}
	return errors.New(strings.Join(messages, "; "))
}

// ErrorFrom converts err into a keyed entry. The key is the type name of the root cause
// and the message is "err -- root cause" when the two differ.
func ErrorFrom(err error) Error {
	cause := RootCause(err)
	message := err.Error()
	if inner := cause.Error(); inner != message {
		message = message + " -- " + inner
	}
	return Error{Key: TypeName(cause), Message: message}
}

// RootCause follows both pkg/errors causes and standard wrapping down to the innermost error.
func RootCause(err error) error {
	for {
		next := errors.Cause(err)
		if next == err {
			next = errors.Unwrap(err)
		}
		if next == nil || next == err {
			return err
		}
		err = next
	}
}

func TypeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.String()
	switch name {
	case "errors.errorString", "errors.fundamental", "fmt.wrapError":
		return "Error"
	}
	return name
}
