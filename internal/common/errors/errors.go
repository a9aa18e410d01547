// Package errors provides standardized error handling for the compliance API.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDealNotFound         ErrorCode = "DEAL_NOT_FOUND"
	ErrCodeAthleteNotFound      ErrorCode = "ATHLETE_NOT_FOUND"
	ErrCodeCampaignNotFound     ErrorCode = "CAMPAIGN_NOT_FOUND"
	ErrCodeScoreNotFound        ErrorCode = "SCORE_NOT_FOUND"
	ErrCodeStateRuleNotFound    ErrorCode = "STATE_RULE_NOT_FOUND"
	ErrCodeDealValidationFailed ErrorCode = "DEAL_VALIDATION_FAILED"

	ErrCodeScoringFailed         ErrorCode = "SCORING_FAILED"
	ErrCodeScoreOverridden       ErrorCode = "SCORE_OVERRIDDEN"
	ErrCodeOverrideNotPermitted  ErrorCode = "OVERRIDE_NOT_PERMITTED"
	ErrCodeOverrideInvalidState  ErrorCode = "OVERRIDE_INVALID_STATE"
	ErrCodeJustificationTooShort ErrorCode = "JUSTIFICATION_TOO_SHORT"

	ErrCodeFMVCalculationFailed ErrorCode = "FMV_CALCULATION_FAILED"
	ErrCodeRecalcRateLimited    ErrorCode = "RECALC_RATE_LIMITED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateDeal            ErrorCode = "DUPLICATE_DEAL"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
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

// ==========================
// 2. Error Constructors
// ==========================

// NewDealNotFoundError creates a non-retryable lookup error.
func NewDealNotFoundError(dealID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDealNotFound,
		Message:   "Deal not found",
		Details:   fmt.Sprintf("dealId: %s", dealID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAthleteNotFoundError creates a non-retryable lookup error.
func NewAthleteNotFoundError(athleteID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAthleteNotFound,
		Message:   "Athlete profile not found",
		Details:   fmt.Sprintf("athleteId: %s", athleteID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCampaignNotFoundError creates a non-retryable lookup error.
func NewCampaignNotFoundError(campaignID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCampaignNotFound,
		Message:   "Campaign not found",
		Details:   fmt.Sprintf("campaignId: %s", campaignID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoreNotFoundError creates a non-retryable lookup error for unscored deals.
func NewScoreNotFoundError(dealID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreNotFound,
		Message:   "Deal has not been scored yet",
		Details:   fmt.Sprintf("dealId: %s", dealID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStateRuleNotFoundError creates a non-retryable lookup error.
func NewStateRuleNotFoundError(state string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStateRuleNotFound,
		Message:   "No compliance rules recorded for state",
		Details:   fmt.Sprintf("state: %s", state),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDealValidationFailedError creates a non-retryable request validation error.
func NewDealValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDealValidationFailed,
		Message:   "Deal payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringFailedError creates a retryable scoring pipeline error.
func NewScoringFailedError(dealID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringFailed,
		Message:   "Compliance scoring failed",
		Details:   fmt.Sprintf("dealId: %s, error: %s", dealID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoreOverriddenError signals that an automated rescore cannot replace an
// officer decision.
func NewScoreOverriddenError(dealID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreOverridden,
		Message:   "Score is held by a compliance officer override",
		Details:   fmt.Sprintf("dealId: %s", dealID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOverrideNotPermittedError creates a non-retryable authorization error.
func NewOverrideNotPermittedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOverrideNotPermitted,
		Message:   "Override requires a compliance officer role",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOverrideInvalidStateError rejects override targets outside the allowed set.
func NewOverrideInvalidStateError(requested string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOverrideInvalidState,
		Message:   "Override status must be green or yellow",
		Details:   fmt.Sprintf("requested: %s", requested),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewJustificationTooShortError rejects override justifications below the minimum length.
func NewJustificationTooShortError(got, min int) *StandardError {
	return &StandardError{
		Code:      ErrCodeJustificationTooShort,
		Message:   "Override justification is too short",
		Details:   fmt.Sprintf("got %d characters, need at least %d", got, min),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFMVCalculationFailedError creates a retryable valuation error.
func NewFMVCalculationFailedError(athleteID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFMVCalculationFailed,
		Message:   "Fair market value calculation failed",
		Details:   fmt.Sprintf("athleteId: %s, error: %s", athleteID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecalcRateLimitedError rejects recalculation requests over the daily quota.
func NewRecalcRateLimitedError(athleteID string, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecalcRateLimited,
		Message:   "Recalculation limit reached for today",
		Details:   fmt.Sprintf("athleteId: %s, dailyLimit: %d", athleteID, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateDealError creates a non-retryable duplicate deal error.
func NewDuplicateDealError(dealID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateDeal,
		Message:   "Deal already exists",
		Details:   fmt.Sprintf("dealId: %s", dealID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query error",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Search query timeout",
		Details:   fmt.Sprintf("index: %s", index),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthenticatedError creates a non-retryable authentication error.
func NewUnauthenticatedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthenticated,
		Message:   "Authentication required",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewForbiddenError creates a non-retryable authorization error.
func NewForbiddenError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeForbidden,
		Message:   "Insufficient permissions",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// httpStatusMapping maps internal error codes to HTTP status codes.
var httpStatusMapping = map[ErrorCode]int{
	ErrCodeDealNotFound:      http.StatusNotFound,
	ErrCodeAthleteNotFound:   http.StatusNotFound,
	ErrCodeCampaignNotFound:  http.StatusNotFound,
	ErrCodeScoreNotFound:     http.StatusNotFound,
	ErrCodeStateRuleNotFound: http.StatusNotFound,
	ErrCodeIndexNotFound:     http.StatusNotFound,
	"RESOURCE_NOT_FOUND":     http.StatusNotFound,

	ErrCodeDealValidationFailed:  http.StatusBadRequest,
	ErrCodeOverrideInvalidState:  http.StatusUnprocessableEntity,
	ErrCodeJustificationTooShort: http.StatusUnprocessableEntity,
	"BUSINESS_RULE_VIOLATION":    http.StatusUnprocessableEntity,

	ErrCodeScoreOverridden: http.StatusConflict,
	ErrCodeDuplicateDeal:   http.StatusConflict,

	ErrCodeUnauthenticated:      http.StatusUnauthorized,
	ErrCodeForbidden:            http.StatusForbidden,
	ErrCodeOverrideNotPermitted: http.StatusForbidden,

	ErrCodeRecalcRateLimited: http.StatusTooManyRequests,

	ErrCodeQueryTimeout:  http.StatusGatewayTimeout,
	ErrCodeSearchTimeout: http.StatusGatewayTimeout,
	"TIMEOUT_ERROR":      http.StatusGatewayTimeout,
}

// HTTPStatus returns the HTTP status code for an error code.
// Unmapped codes fall back to 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

// AsStandardError returns err as a *StandardError, wrapping unknown errors
// as a generic retryable query failure.
func AsStandardError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Internal server error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "OVERRIDE") || strings.Contains(codeStr, "JUSTIFICATION"):
		return "OVERRIDE"
	case strings.Contains(codeStr, "SCOR"):
		return "SCORING"
	case strings.Contains(codeStr, "FMV") || strings.Contains(codeStr, "RECALC"):
		return "VALUATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "AUTH") || strings.Contains(codeStr, "FORBIDDEN"):
		return "AUTH"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "DUPLICATE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
