package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound               = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists          = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput           = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidTransition      = NewDomainError("INVALID_TRANSITION", "Status change not allowed from current status")
	ErrInsufficientStock      = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrMissingPaymentMethod   = NewDomainError("MISSING_PAYMENT_METHOD", "A payment method is required")
	ErrInvalidAmount          = NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	ErrExceedsBalance         = NewDomainError("EXCEEDS_BALANCE", "Payment amount exceeds outstanding balance")
	ErrExceedsNetPaid         = NewDomainError("EXCEEDS_NET_PAID", "Refund amount exceeds net paid")
	ErrNotDeletable           = NewDomainError("NOT_DELETABLE", "Record cannot be deleted in the current sale status")
	ErrParentNotEligible      = NewDomainError("PARENT_NOT_ELIGIBLE", "Parent sale is not eligible for linked sales")
	ErrConcurrentModification = NewDomainError("CONCURRENT_MODIFICATION", "Resource was modified by another process")
	ErrUnauthorized           = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
)
