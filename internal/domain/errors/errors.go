// Package errors defines the application error taxonomy: field-level
// validation failures, missing proof enumerations, upstream order
// failures, and the generic catalog/cart errors.
package errors

import (
	"net/http"
	"strings"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Cart-related errors
	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Quantity must be a positive integer",
		"",
	)

	ErrCartLineNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_LINE_NOT_FOUND",
		"The item is not in your cart",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Your cart is empty",
		"",
	)

	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"The product is no longer available",
		"",
	)

	ErrCatalogUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"CATALOG_UNAVAILABLE",
		"The catalog could not be loaded",
		"",
	)

	// Checkout-related errors
	ErrCheckoutSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"CHECKOUT_SESSION_NOT_FOUND",
		"The checkout session does not exist or has expired",
		"",
	)

	ErrInvalidCheckoutState = NewBaseError(
		http.StatusConflict,
		"INVALID_CHECKOUT_STATE",
		"This step is not available from the current checkout state",
		"",
	)

	ErrInvalidPaymentMethod = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PAYMENT_METHOD",
		"The selected payment method is not supported",
		"",
	)

	ErrProofInvalidType = NewBaseError(
		http.StatusBadRequest,
		"PROOF_INVALID_TYPE",
		"Only JPG, PNG, or PDF files are allowed",
		"",
	)

	ErrProofTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"PROOF_TOO_LARGE",
		"Maximum file size is 5MB",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The resource was not found",
		"",
	)
)

// ValidationError is a field-level validation failure in a checkout gate.
// It blocks the state transition and is surfaced inline per field.
type ValidationError struct {
	fields map[string]string
}

// NewValidationError creates a validation error from field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{fields: fields}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "input validation failed"
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return "Input validation failed"
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.fields))
	for field, msg := range e.fields {
		parts = append(parts, field+": "+msg)
	}

	return strings.Join(parts, "; ")
}

// Fields returns the per-field error messages.
func (e *ValidationError) Fields() map[string]string {
	return e.fields
}

// MissingProofError enumerates the proof-of-payment items still missing
// before the Payment step may advance to Review. The list is surfaced to
// the customer as-is, never collapsed into a generic error.
type MissingProofError struct {
	missing []string
}

// NewMissingProofError creates a missing-proof error from the item list.
func NewMissingProofError(missing []string) *MissingProofError {
	return &MissingProofError{missing: missing}
}

// Error implements the error interface
func (e *MissingProofError) Error() string {
	return "additional information required: " + strings.Join(e.missing, ", ")
}

// HTTPCode returns the HTTP status code
func (e *MissingProofError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *MissingProofError) ErrorCode() string {
	return "MISSING_PROOF"
}

// Message returns the user-friendly error message
func (e *MissingProofError) Message() string {
	return "Additional Information Required"
}

// Details returns detailed error information
func (e *MissingProofError) Details() string {
	return strings.Join(e.missing, "; ")
}

// Missing returns the enumerated missing items.
func (e *MissingProofError) Missing() []string {
	return e.missing
}

// OrderCreationError carries the upstream order service's message when it
// provided one, so the customer sees it verbatim.
type OrderCreationError struct {
	err     error
	message string
}

// NewOrderCreationError creates an order-creation error. An empty message
// falls back to the generic failure text.
func NewOrderCreationError(err error, message string) AppError {
	return &OrderCreationError{err: err, message: message}
}

// Error implements the error interface
func (e *OrderCreationError) Error() string {
	if e.err != nil {
		return errors.Wrap(e.err, "order creation failed").Error()
	}

	return "order creation failed"
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *OrderCreationError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *OrderCreationError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *OrderCreationError) ErrorCode() string {
	return "ORDER_CREATION_FAILED"
}

// Message returns the user-friendly error message
func (e *OrderCreationError) Message() string {
	if e.message != "" {
		return e.message
	}

	return "Server error while placing order"
}

// Details returns detailed error information
func (e *OrderCreationError) Details() string {
	if e.err != nil {
		return e.err.Error()
	}

	return ""
}
