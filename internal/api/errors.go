package api

import (
	"errors"
	"fmt"
)

// Codes reported by the backend in the error body.
const (
	CodeUnknown            = "UNKNOWN_ERROR"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeMatchFull          = "MATCH_FULL"
	CodeAlreadyJoined      = "ALREADY_JOINED"
	CodeForbidden          = "FORBIDDEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error is a non-success response from the backend. Transport failures are
// never reported as *Error.
type Error struct {
	Status    int
	Code      string
	Message   string
	Timestamp string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) String() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func IsCode(err error, code string) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Code == code
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
