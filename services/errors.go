package services

import (
	"fmt"
	"strconv"
	"strings"
)

// Service errors are typed so controllers can map them onto HTTP statuses
// without string matching. All of them describe user-correctable input
// problems; none are retried.

// NotFoundError means a token or id did not resolve to a record.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError rejects bad input. For submit failures MissingQuestionIDs
// lists every active question without an answer.
type ValidationError struct {
	Message            string
	MissingQuestionIDs []int
}

func (e *ValidationError) Error() string {
	if len(e.MissingQuestionIDs) == 0 {
		return e.Message
	}
	ids := make([]string, len(e.MissingQuestionIDs))
	for i, id := range e.MissingQuestionIDs {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s (questions: %s)", e.Message, strings.Join(ids, ", "))
}

// ConflictError guards state transitions: double submits, mutation of a
// submitted response, or a second open follow-up.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PermissionError means the caller's vendor email does not own the record.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}
