package sales

// SaleStatus represents the lifecycle status of a sale.
// The wire strings are lowercase and persist unchanged.
type SaleStatus string

const (
	SaleStatusQuote       SaleStatus = "quote"
	SaleStatusReservation SaleStatus = "reservation"
	SaleStatusPending     SaleStatus = "pending"
	SaleStatusPaid        SaleStatus = "paid"
	SaleStatusProcessing  SaleStatus = "processing"
	SaleStatusShipped     SaleStatus = "shipped"
	SaleStatusDelivered   SaleStatus = "delivered"
	SaleStatusCancelled   SaleStatus = "cancelled"
	SaleStatusRejected    SaleStatus = "rejected"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusQuote, SaleStatusReservation, SaleStatusPending, SaleStatusPaid,
		SaleStatusProcessing, SaleStatusShipped, SaleStatusDelivered,
		SaleStatusCancelled, SaleStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle only moves forward; cancelled, rejected and delivered are
// terminal.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusQuote:
		return target == SaleStatusPending || target == SaleStatusCancelled || target == SaleStatusRejected
	case SaleStatusReservation:
		return target == SaleStatusPending || target == SaleStatusPaid || target == SaleStatusCancelled
	case SaleStatusPending:
		return target == SaleStatusPaid || target == SaleStatusCancelled
	case SaleStatusPaid:
		return target == SaleStatusProcessing || target == SaleStatusCancelled
	case SaleStatusProcessing:
		return target == SaleStatusShipped || target == SaleStatusCancelled
	case SaleStatusShipped:
		return target == SaleStatusDelivered || target == SaleStatusCancelled
	case SaleStatusDelivered, SaleStatusCancelled, SaleStatusRejected:
		return false
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusDelivered || s == SaleStatusCancelled || s == SaleStatusRejected
}

// IsEditable returns true if line items, discounts and shipping can still change
func (s SaleStatus) IsEditable() bool {
	return s == SaleStatusQuote || s == SaleStatusReservation
}

// HoldsReservation returns true for states where stock is reserved but not
// yet deducted
func (s SaleStatus) HoldsReservation() bool {
	return s == SaleStatusReservation || s == SaleStatusPending
}

// HoldsDeduction returns true for states where stock was already deducted
func (s SaleStatus) HoldsDeduction() bool {
	return s == SaleStatusPaid || s == SaleStatusProcessing || s == SaleStatusShipped
}

// AllSaleStatuses lists every valid status, mainly for validation and tests
func AllSaleStatuses() []SaleStatus {
	return []SaleStatus{
		SaleStatusQuote,
		SaleStatusReservation,
		SaleStatusPending,
		SaleStatusPaid,
		SaleStatusProcessing,
		SaleStatusShipped,
		SaleStatusDelivered,
		SaleStatusCancelled,
		SaleStatusRejected,
	}
}
