package service

import (
	"errors"
	"fmt"
)

const CodeNotFound = "NOT_FOUND"

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(resource string, id int64, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %d not found", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
		Err: err,
	}
}

// AsBusinessError reports whether err carries a BusinessError.
func AsBusinessError(err error) (*BusinessError, bool) {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	businessErr, ok := AsBusinessError(err)
	return ok && businessErr.Code == CodeNotFound
}
