package model

import "errors"

// ErrorKind classifies a domain error for propagation and HTTP mapping.
type ErrorKind string

const (
	// ErrKindValidation covers malformed input: reason too short, no items
	// selected, quantity outside the purchased range.
	ErrKindValidation ErrorKind = "validation"

	// ErrKindState covers actions not permitted in the current order,
	// cancellation or return status.
	ErrKindState ErrorKind = "state"

	// ErrKindDuplicate covers re-submission of an already-requested return.
	ErrKindDuplicate ErrorKind = "duplicate"

	// ErrKindTransport covers failures of the remote call itself.
	ErrKindTransport ErrorKind = "transport"
)

// Standard error codes for API responses
const (
	ErrCodeReasonTooShort       = "REASON_TOO_SHORT"
	ErrCodeNoItemsSelected      = "NO_ITEMS_SELECTED"
	ErrCodeQuantityOutOfRange   = "QUANTITY_OUT_OF_RANGE"
	ErrCodeUnknownItem          = "UNKNOWN_ITEM"
	ErrCodeNotCancellable       = "NOT_CANCELLABLE"
	ErrCodeCancellationOpen     = "CANCELLATION_OPEN"
	ErrCodeNotReturnable        = "NOT_RETURNABLE"
	ErrCodeRequestInFlight      = "REQUEST_IN_FLIGHT"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeReturnAlreadyOpen    = "RETURN_ALREADY_REQUESTED"
	ErrCodeOrderServiceFailure  = "ORDER_SERVICE_FAILURE"
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError carries a classified business error with a stable code and a
// customer-presentable message.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewTransportError wraps a failure of the remote order service. The remote
// message is passed through verbatim when available, with a generic fallback
// otherwise.
func NewTransportError(message string) *DomainError {
	if message == "" {
		message = "The order service could not be reached. Please try again."
	}
	return NewDomainError(ErrKindTransport, ErrCodeOrderServiceFailure, message)
}

// IsKind reports whether err is (or wraps) a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// Common domain errors
var (
	ErrReasonTooShort         = NewDomainError(ErrKindValidation, ErrCodeReasonTooShort, "Reason must be at least 10 characters")
	ErrNoItemsSelected        = NewDomainError(ErrKindValidation, ErrCodeNoItemsSelected, "Select at least one item to return")
	ErrQuantityOutOfRange     = NewDomainError(ErrKindValidation, ErrCodeQuantityOutOfRange, "Return quantity must be between 1 and the purchased quantity")
	ErrUnknownItem            = NewDomainError(ErrKindValidation, ErrCodeUnknownItem, "Selected item does not belong to this order")
	ErrNotCancellable         = NewDomainError(ErrKindState, ErrCodeNotCancellable, "Orders can only be cancelled while pending or processing")
	ErrCancellationOpen       = NewDomainError(ErrKindState, ErrCodeCancellationOpen, "A cancellation request is already open for this order")
	ErrNotReturnable          = NewDomainError(ErrKindState, ErrCodeNotReturnable, "Returns are only accepted for delivered orders")
	ErrRequestInFlight        = NewDomainError(ErrKindState, ErrCodeRequestInFlight, "A request for this order is still being processed")
	ErrOrderNotFound          = NewDomainError(ErrKindState, ErrCodeOrderNotFound, "Order not found")
	ErrReturnAlreadyRequested = NewDomainError(ErrKindDuplicate, ErrCodeReturnAlreadyOpen, "A return has already been requested")
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}
