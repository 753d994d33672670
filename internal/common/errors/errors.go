// Package errors provides standardized error handling for the onboarding service.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	ErrCodeSectionUnknown    ErrorCode = "SECTION_UNKNOWN"
	ErrCodeNavigationInvalid ErrorCode = "NAVIGATION_INVALID"

	ErrCodeInviteInvalid ErrorCode = "INVITE_INVALID"

	ErrCodeSubmissionIncomplete ErrorCode = "SUBMISSION_INCOMPLETE"
	ErrCodeSubmissionFailed     ErrorCode = "SUBMISSION_FAILED"
	ErrCodeSubmissionRejected   ErrorCode = "SUBMISSION_REJECTED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewValidationFailedError creates a non-retryable field validation error.
func NewValidationFailedError(sectionID string, fieldErrors map[string]string) *StandardError {
	meta := make(map[string]interface{}, len(fieldErrors)+1)
	meta["sectionId"] = sectionID
	for id, msg := range fieldErrors {
		meta[id] = msg
	}
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "One or more required fields are invalid",
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUnavailableError creates a retryable storage transport error.
func NewStorageUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   "Draft storage is unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSectionUnknownError creates a non-retryable error for an unknown section id.
func NewSectionUnknownError(sectionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSectionUnknown,
		Message:   "Unknown onboarding section",
		Details:   fmt.Sprintf("sectionId: %s", sectionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNavigationInvalidError creates a non-retryable error for an action
// not available from the current screen.
func NewNavigationInvalidError(action, screen string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNavigationInvalid,
		Message:   "Action not available from the current screen",
		Details:   fmt.Sprintf("action: %s, screen: %s", action, screen),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInviteInvalidError creates a non-retryable invite rejection.
func NewInviteInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInviteInvalid,
		Message:   "Invite code is not valid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionIncompleteError creates a non-retryable error listing missing sections.
func NewSubmissionIncompleteError(incomplete []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionIncomplete,
		Message:   "Application is not complete enough to submit",
		Retryable: false,
		Metadata:  map[string]interface{}{"incompleteSections": incomplete},
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError creates a retryable compliance provider error.
func NewSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   "Submission to the compliance provider failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionRejectedError creates a non-retryable rejection from the provider.
func NewSubmissionRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionRejected,
		Message:   "Compliance provider rejected the application",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

// CodeOf extracts the ErrorCode from err, or INTERNAL_ERROR for plain errors.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return "INTERNAL_ERROR"
}
