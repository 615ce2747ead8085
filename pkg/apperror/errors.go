package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Webhook Security (SEC) ----

// ErrInvalidSignature rejects an event whose provider signature does not
// verify. Unverified payloads are never processed.
func ErrInvalidSignature(err error) *AppError {
	return Wrap("SEC_001", "Invalid webhook signature", http.StatusBadRequest, err)
}

func ErrMissingSigningSecret() *AppError {
	return New("SEC_002", "Webhook signing secret is not configured", http.StatusServiceUnavailable)
}

// ---- Event Processing (EVT) ----

// ErrUnknownEventType marks an event outside the allowlist. It is
// acknowledged to the provider and ignored, never surfaced as an HTTP error.
func ErrUnknownEventType(eventType string) *AppError {
	return New("EVT_001", fmt.Sprintf("Event type %q is not handled", eventType), http.StatusOK)
}

// ErrMissingCustomerID marks an allowlisted event without a customer
// reference. It indicates a provider contract violation or an allowlist
// misconfiguration and is recorded as a monitored failure.
func ErrMissingCustomerID(eventType string) *AppError {
	return New("EVT_002", fmt.Sprintf("Event %q carries no customer id", eventType), http.StatusOK)
}

// ---- Provider API (PRV) ----

func ErrProviderAPI(op string, err error) *AppError {
	return Wrap("PRV_001", fmt.Sprintf("Payment provider call failed: %s", op), http.StatusBadGateway, err)
}

// ---- Billing Business Logic (BIL) ----

func ErrAlreadySubscribed() *AppError {
	return New("BIL_001", "An active subscription already exists for this account", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("BIL_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("SYS_002", message, http.StatusBadRequest)
}
