package dto

import "net/http"

// HTTP-layer error codes. Domain errors carry their own codes and are
// mapped to status codes below.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeDuplicate       = "DUPLICATE_REQUEST"
)

// Domain error codes as produced by the domain layer.
const (
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeItemNotFound           = "ITEM_NOT_FOUND"
	ErrCodeStockReserved          = "STOCK_RESERVED"
	ErrCodeAlreadyExists          = "ALREADY_EXISTS"
	ErrCodeInvalidInput           = "INVALID_INPUT"
	ErrCodeInvalidTransition      = "INVALID_TRANSITION"
	ErrCodeInsufficientStock      = "INSUFFICIENT_STOCK"
	ErrCodeMissingPaymentMethod   = "MISSING_PAYMENT_METHOD"
	ErrCodeInvalidAmount          = "INVALID_AMOUNT"
	ErrCodeExceedsBalance         = "EXCEEDS_BALANCE"
	ErrCodeExceedsNetPaid         = "EXCEEDS_NET_PAID"
	ErrCodeNotDeletable           = "NOT_DELETABLE"
	ErrCodeParentNotEligible      = "PARENT_NOT_ELIGIBLE"
	ErrCodeConcurrentModification = "CONCURRENT_MODIFICATION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Business rule violations map to 422, conflicts to 409, bad input to 400.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeDuplicate:       http.StatusConflict,

	ErrCodeNotFound:               http.StatusNotFound,
	ErrCodeItemNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:          http.StatusConflict,
	ErrCodeConcurrentModification: http.StatusConflict,

	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeInvalidTransition:    http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:    http.StatusUnprocessableEntity,
	ErrCodeMissingPaymentMethod: http.StatusUnprocessableEntity,
	ErrCodeInvalidAmount:        http.StatusUnprocessableEntity,
	ErrCodeExceedsBalance:       http.StatusUnprocessableEntity,
	ErrCodeExceedsNetPaid:       http.StatusUnprocessableEntity,
	ErrCodeNotDeletable:         http.StatusUnprocessableEntity,
	ErrCodeStockReserved:        http.StatusUnprocessableEntity,
	ErrCodeParentNotEligible:    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
