package apperror

import "net/http"

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// RetryAfter carries the wait hint (seconds) for rate-limit rejections.
	RetryAfter int   `json:"retry_after,omitempty"`
	Err        error `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func RequestTimeout(message string) *AppError {
	return New(http.StatusRequestTimeout, message, nil)
}

func TooManyRequests(message string, retryAfter int) *AppError {
	e := New(http.StatusTooManyRequests, message, nil)
	e.RetryAfter = retryAfter
	return e
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal server error", err)
}
