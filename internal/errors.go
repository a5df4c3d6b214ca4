package internal

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrPersistence          = errors.New("persistence failure")
	ErrHistoryFull          = errors.New("workout history is full")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
	ErrMissingCredential    = errors.New("missing assistant API key")
)

// AppError is the error body returned by the HTTP API.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
