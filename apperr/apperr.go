// Package apperr is the error taxonomy shared by the booking ledger and the
// user management handlers. Every violation is reported synchronously as one
// of these types; nothing is retried and nothing is swallowed.
package apperr

import (
	"errors"
	"net/http"
)

type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

type ForbiddenError struct{ Msg string }

func (e *ForbiddenError) Error() string { return e.Msg }

type BadRequestError struct{ Msg string }

func (e *BadRequestError) Error() string { return e.Msg }

func Conflict(msg string) error   { return &ConflictError{Msg: msg} }
func NotFound(msg string) error   { return &NotFoundError{Msg: msg} }
func Forbidden(msg string) error  { return &ForbiddenError{Msg: msg} }
func BadRequest(msg string) error { return &BadRequestError{Msg: msg} }

// StatusOf maps a domain error to its HTTP status; anything untyped is a 500.
func StatusOf(err error) int {
	var conflict *ConflictError
	var notFound *NotFoundError
	var forbidden *ForbiddenError
	var badRequest *BadRequestError
	switch {
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
