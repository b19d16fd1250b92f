package errors

import (
	"errors"
	"fmt"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrInvalidInput   = errors.New("invalid input data")
)

const (
	CodeDeviceNotFound = "DEVICE_NOT_FOUND"
	CodeInvalidInput   = "INVALID_INPUT"
)

// AppError carries a stable machine-readable code alongside the
// human-readable message and the wrapped cause.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
