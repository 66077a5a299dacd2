package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an application error category.
type ErrorCode string

// AppError is the application error carried from services up to transport.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users and accounts
	ErrUserNotFound            = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists      = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword            = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidAccountType      = New(CodeInvalidAccountType, "Invalid account type", http.StatusBadRequest)
	ErrInsufficientPermissions = New(CodeInsufficientPermissions, "Insufficient permissions", http.StatusForbidden)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Jobs
	ErrJobNotFound           = New(CodeJobNotFound, "Job not found", http.StatusNotFound)
	ErrUnknownCategory       = New(CodeValidationFailed, "Unknown category", http.StatusBadRequest)
	ErrUnknownLocation       = New(CodeValidationFailed, "Unknown location", http.StatusBadRequest)
	ErrUnknownSkill          = New(CodeValidationFailed, "Unknown skill reference", http.StatusBadRequest)
	ErrInvalidOfferDays      = New(CodeValidationFailed, "Offer days must be one of 7, 14, 21 or 30", http.StatusBadRequest)
	ErrInvalidExpectedOffers = New(CodeValidationFailed, "Expected offers must be one of 6, 10 or 14", http.StatusBadRequest)
	ErrJobNotDraft           = New(CodeConflict, "Job is not in draft status", http.StatusConflict)
	ErrJobAlreadyClosed      = New(CodeConflict, "Job is already closed", http.StatusConflict)
	ErrJobNotClosable        = New("JOB_NOT_CLOSABLE", "Draft jobs cannot be closed", http.StatusBadRequest)

	// Applications
	ErrNotAFreelancer        = New(CodeForbidden, "Only freelancer accounts may apply", http.StatusForbidden)
	ErrSelfApplication       = New(CodeForbidden, "Cannot apply to your own job", http.StatusForbidden)
	ErrDeadlinePassed        = New(CodeForbidden, "Application deadline passed", http.StatusForbidden)
	ErrApplicantTypeRejected = New(CodeForbidden, "Applicant type is not accepted for this job", http.StatusForbidden)
	ErrJobCapacityReached    = New(CodeConflict, "Job already received the expected number of offers", http.StatusConflict)

	// Proposals
	ErrProposalNotFound    = New(CodeProposalNotFound, "Proposal not found", http.StatusNotFound)
	ErrProposalAlreadyUsed = New(CodeConflict, "Proposal has already been responded to", http.StatusConflict)
	ErrTermsNotAccepted    = New(CodeValidationFailed, "Terms must be accepted", http.StatusBadRequest)
	ErrAccountTypeConflict = New(CodeConflict, "An account with this email exists and is not a client account", http.StatusConflict)
)

// Helper constructors

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
