package errors

import "net/http"

// Error code constants.
// Errors carry code + params only; user-facing copy lives in the frontend.
// Backend logs are always in English.

// View composition error codes.
const (
	CodeLeadNotFound     = "LEAD_NOT_FOUND"
	CodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	CodeDealNotFound     = "DEAL_NOT_FOUND"
	CodeContactNotFound  = "CONTACT_NOT_FOUND"
	CodeActivityNotFound = "ACTIVITY_NOT_FOUND"
	CodeEmailNotFound    = "EMAIL_NOT_FOUND"
	CodeComposeFailed    = "VIEW_COMPOSE_FAILED"
)

// Backend gateway error codes.
const (
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeBackendRejected    = "BACKEND_REJECTED"
	CodeBackendAuthFailed  = "BACKEND_AUTH_FAILED"
)

// Write orchestration error codes.
const (
	CodeLeadCreateFail = "LEAD_CREATION_FAILED"
	CodeDealCreateFail = "DEAL_CREATION_FAILED"
)

// Validation error codes.
const (
	CodeInvalidRequestField = "INVALID_REQUEST_FIELD"
	CodeInvalidRelationType = "INVALID_RELATION_TYPE"
	CodeValidationFailed    = "VALIDATION_FAILED"
)

// Dashboard error codes.
const (
	CodeDashboardFailed = "DASHBOARD_AGGREGATION_FAILED"
)

// Convenience constructors using predefined codes.

// ErrComposeFailed creates a generic "could not load details" error.
// A failed composition surfaces as one error regardless of which branch failed.
func ErrComposeFailed(err error) *AppError {
	return Wrap(err, CodeComposeFailed, "could not load details", http.StatusInternalServerError)
}

// ErrBackendUnavailable creates a 503 error for backend transport failures.
func ErrBackendUnavailable(err error) *AppError {
	return Wrap(err, CodeBackendUnavailable, "crm backend is unavailable", http.StatusServiceUnavailable)
}

// ErrInvalidRelationType creates a 400 error for unrecognized relation types.
func ErrInvalidRelationType(value string) *AppError {
	return (&AppError{
		Code:       CodeInvalidRelationType,
		Message:    "unrecognized relation type",
		HTTPStatus: http.StatusBadRequest,
	}).WithParams(map[string]interface{}{"value": value})
}
