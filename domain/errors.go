package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

// ValidationError carries every problem found in one save attempt.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Count() int {
	return len(e.Errors)
}

func (e *ValidationError) Error() string {
	noun := "errors"
	if e.Count() == 1 {
		noun = "error"
	}
	return fmt.Sprintf("%d %s prohibited this applicant from being saved", e.Count(), noun)
}

func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("couldn't find %s with id %d", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError wraps a store failure. Code is the SQLSTATE when the driver reports one.
type PersistenceError struct {
	Op   string
	Code string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s failed (sqlstate %s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
