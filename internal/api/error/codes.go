// Package error defines the API error taxonomy and its HTTP status mapping.
package error

import "net/http"

type ErrorCode string

const (
	UnknownError           ErrorCode = "unknown_error"
	InternalServerError    ErrorCode = "internal_server_error"
	BadRequest             ErrorCode = "bad_request"
	UnsupportedMethod      ErrorCode = "unsupported_method"
	MissingFields          ErrorCode = "missing_fields"
	InsufficientSteps      ErrorCode = "insufficient_steps"
	EmptyField             ErrorCode = "empty_field"
	InvalidMimeType        ErrorCode = "invalid_mime_type"
	InvalidDefaultMimeType ErrorCode = "invalid_default_mime_type"
	MalformedRecord        ErrorCode = "malformed_record"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:           0, // No error code - unknown
	InternalServerError:    http.StatusInternalServerError,
	BadRequest:             http.StatusBadRequest,
	UnsupportedMethod:      http.StatusBadRequest,
	MissingFields:          http.StatusBadRequest,
	InsufficientSteps:      http.StatusBadRequest,
	EmptyField:             http.StatusBadRequest,
	InvalidMimeType:        http.StatusBadRequest,
	InvalidDefaultMimeType: http.StatusBadRequest,
	MalformedRecord:        http.StatusInternalServerError,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
