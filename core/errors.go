package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// PersistenceError indicates that a record store call failed.
// NotFound is set when the failure is a missing row rather than a boundary fault.
type PersistenceError struct {
	Op       string
	Table    string
	Err      error
	NotFound bool
}

func NewPersistenceError(op, table string, err error) error {
	return &PersistenceError{Op: op, Table: table, Err: err}
}

func NewNotFoundError(table, id string) error {
	return &PersistenceError{
		Op:       "get",
		Table:    table,
		Err:      fmt.Errorf("%s: no record with id %q", table, id),
		NotFound: true,
	}
}

func (err PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", err.Op, err.Table, err.Err)
}

func (err PersistenceError) Unwrap() error {
	return err.Err
}

func IsNotFound(err error) bool {
	perr, ok := errors.Cause(err).(*PersistenceError)
	return ok && perr.NotFound
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
