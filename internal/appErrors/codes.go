package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
	CodeInvalidAccountType ErrorCode = "INVALID_ACCOUNT_TYPE"

	// Resources
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"
	CodeProposalNotFound ErrorCode = "PROPOSAL_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists      ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	CodeConflict                ErrorCode = "CONFLICT"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
