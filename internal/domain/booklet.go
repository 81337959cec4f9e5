package domain

import (
	"errors"
	"fmt"
)

// BookletErrorCode is the closed set of reasons a booklet generation can fail.
// Clients switch on the code; the message is for humans only.
type BookletErrorCode string

const (
	BookletInvalidRequest BookletErrorCode = "invalid_request"
	BookletNotFound       BookletErrorCode = "not_found"
	BookletNoStudentPDFs  BookletErrorCode = "no_student_pdfs"
	BookletNoPDFsMerged   BookletErrorCode = "no_pdfs_merged"
	BookletTooLarge       BookletErrorCode = "output_too_large"
	BookletUploadFailed   BookletErrorCode = "upload_failed"
	BookletInternal       BookletErrorCode = "internal"
)

func (c BookletErrorCode) String() string { return string(c) }

// BookletError is returned by the booklet assembler for every hard failure.
type BookletError struct {
	Code    BookletErrorCode
	Message string
	Err     error
}

func (e *BookletError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("booklet %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("booklet %s: %s", e.Code, e.Message)
}

func (e *BookletError) Unwrap() error { return e.Err }

// NewBookletError creates a BookletError with an optional cause.
func NewBookletError(code BookletErrorCode, message string, cause error) *BookletError {
	return &BookletError{Code: code, Message: message, Err: cause}
}

// BookletErrorCodeOf extracts the code from err, defaulting to BookletInternal.
func BookletErrorCodeOf(err error) BookletErrorCode {
	var be *BookletError
	if errors.As(err, &be) {
		return be.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return BookletInvalidRequest
	case errors.Is(err, ErrNotFound):
		return BookletNotFound
	}
	return BookletInternal
}
