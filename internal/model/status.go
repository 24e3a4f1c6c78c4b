package model

// OrderStatus represents the shipment status of an order as reported by the
// order service.
type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusConfirmed   OrderStatus = "confirmed"
	OrderStatusProcessing  OrderStatus = "processing"
	OrderStatusReadyToShip OrderStatus = "ready_to_ship"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusCancelled   OrderStatus = "cancelled"
)

// IsValid checks if the order status is one of the known values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusReadyToShip,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Cancellable reports whether a cancellation request may still be opened.
// This is a UX gate only; the order service re-enforces it server-side.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// Returnable reports whether a return request may be opened.
func (s OrderStatus) Returnable() bool {
	return s == OrderStatusDelivered
}

// Label returns the customer-facing label for the shipment status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusConfirmed, OrderStatusProcessing:
		return "Processing"
	case OrderStatusReadyToShip:
		return "Ready to Ship"
	case OrderStatusShipped:
		return "In Transit"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// CancellationState is the derived outcome of a cancellation request.
type CancellationState string

const (
	CancellationNone     CancellationState = "none"
	CancellationPending  CancellationState = "pending"
	CancellationApproved CancellationState = "approved"
	CancellationRejected CancellationState = "rejected"
)

// ReturnState is the derived state of a return, resolved per order and per
// line item from the underlying request/approval/review flags.
type ReturnState string

const (
	ReturnNone     ReturnState = "none"
	ReturnInReview ReturnState = "in_review"
	ReturnApproved ReturnState = "approved"
	ReturnDeclined ReturnState = "declined"
)
