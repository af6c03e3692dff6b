package request

import (
	"errors"
	"net/http"
)

const (
	errorTypeParseFailed = "entity.parse.failed"
	errorTypeTooLarge    = "entity.too.large"
)

// ParseError reports a request body that could not be parsed. It is
// marshalled verbatim into the error envelope, raw body included.
type ParseError struct {
	Message    string `json:"message"`
	Body       string `json:"body"`
	Type       string `json:"type"`
	Status     int    `json:"status"`
	StatusCode int    `json:"statusCode"`
	Expose     bool   `json:"expose"`
}

func newParseError(raw []byte, message string) *ParseError {
	return &ParseError{
		Message:    message,
		Body:       string(raw),
		Type:       errorTypeParseFailed,
		Status:     http.StatusBadRequest,
		StatusCode: http.StatusBadRequest,
		Expose:     true,
	}
}

func (e *ParseError) Error() string {
	return e.Message
}

// TooLargeError reports a request body exceeding the configured limit.
type TooLargeError struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Limit      int64  `json:"limit"`
	Length     int64  `json:"length"`
	Status     int    `json:"status"`
	StatusCode int    `json:"statusCode"`
	Expose     bool   `json:"expose"`
}

func newTooLargeError(limit, length int64) *TooLargeError {
	return &TooLargeError{
		Message:    "request entity too large",
		Type:       errorTypeTooLarge,
		Limit:      limit,
		Length:     length,
		Status:     http.StatusRequestEntityTooLarge,
		StatusCode: http.StatusRequestEntityTooLarge,
		Expose:     true,
	}
}

func (e *TooLargeError) Error() string {
	return e.Message
}

// StatusCode returns the http status a normalization error maps to.
func StatusCode(err error) int {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.StatusCode
	}

	var tooLargeErr *TooLargeError
	if errors.As(err, &tooLargeErr) {
		return tooLargeErr.StatusCode
	}

	return http.StatusBadRequest
}
