// Package errors defines the structured error taxonomy shared across the
// conversion pipeline and the HTTP façade.
//
// Design pattern: factory functions per error code, mirroring the
// processing-error shape used elsewhere in this codebase's ancestry.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode enumerates the taxonomy from the conversion core's error
// handling design.
type ErrorCode string

const (
	NotFound            ErrorCode = "NOT_FOUND"
	InvalidArgument     ErrorCode = "INVALID_ARGUMENT"
	Corrupt             ErrorCode = "CORRUPT"
	PageProcessingError ErrorCode = "PAGE_PROCESSING_ERROR"
	OCRError            ErrorCode = "OCR_ERROR"
	IOError             ErrorCode = "IO_ERROR"
	Unauthorized        ErrorCode = "UNAUTHORIZED"
)

// ConversionError is a structured error carrying enough context to map onto
// an HTTP status at the façade boundary and to log with key/value fields.
type ConversionError struct {
	Code      ErrorCode
	Message   string
	JobID     string
	Timestamp time.Time
	Details   map[string]interface{}
	Cause     error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// ToMap flattens the error into a map suitable for structured logging or a
// JSON error body.
func (e *ConversionError) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"error_code": string(e.Code),
		"message":    e.Message,
		"timestamp":  e.Timestamp,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	if e.JobID != "" {
		result["job_id"] = e.JobID
	}
	if e.Cause != nil {
		result["cause"] = e.Cause.Error()
	}
	return result
}

// Code reports the ErrorCode of err if it is (or wraps) a *ConversionError,
// and ok=false otherwise.
func Code(err error) (ErrorCode, bool) {
	var ce *ConversionError
	if ok := asConversionError(err, &ce); ok {
		return ce.Code, true
	}
	return "", false
}

func asConversionError(err error, target **ConversionError) bool {
	for err != nil {
		if ce, ok := err.(*ConversionError); ok {
			*target = ce
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func NewNotFoundError(message string, cause error) *ConversionError {
	return &ConversionError{Code: NotFound, Message: message, Timestamp: time.Now(), Cause: cause}
}

func NewInvalidArgumentError(message string) *ConversionError {
	return &ConversionError{Code: InvalidArgument, Message: message, Timestamp: time.Now()}
}

func NewCorruptError(path string, cause error) *ConversionError {
	return &ConversionError{
		Code:      Corrupt,
		Message:   fmt.Sprintf("cannot open PDF: %s", path),
		Timestamp: time.Now(),
		Details:   map[string]interface{}{"path": path},
		Cause:     cause,
	}
}

func NewPageProcessingError(page int, cause error) *ConversionError {
	return &ConversionError{
		Code:      PageProcessingError,
		Message:   fmt.Sprintf("failed to process page %d", page),
		Timestamp: time.Now(),
		Details:   map[string]interface{}{"page": page},
		Cause:     cause,
	}
}

func NewOCRError(imageIndex int, cause error) *ConversionError {
	return &ConversionError{
		Code:      OCRError,
		Message:   fmt.Sprintf("OCR failed for image %d", imageIndex),
		Timestamp: time.Now(),
		Details:   map[string]interface{}{"image_index": imageIndex},
		Cause:     cause,
	}
}

func NewIOError(message string, cause error) *ConversionError {
	return &ConversionError{Code: IOError, Message: message, Timestamp: time.Now(), Cause: cause}
}

func NewUnauthorizedError(message string) *ConversionError {
	return &ConversionError{Code: Unauthorized, Message: message, Timestamp: time.Now()}
}
