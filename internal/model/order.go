package model

import "time"

// Order represents a raw customer order as received from the order service.
// Records are read-only from this service's perspective; all mutations happen
// server-side and are observed by re-fetching.
type Order struct {
	OrderID                     string      `json:"orderId"`
	OrderNumber                 string      `json:"orderNumber"`
	Status                      OrderStatus `json:"status"`
	TotalAmount                 float64     `json:"totalAmount"`
	ShippingAddress             string      `json:"shippingAddress"`
	VoucherCode                 *string     `json:"voucherCode,omitempty"`
	CreatedAt                   time.Time   `json:"createdAt"`
	CancellationRequestedAt     *time.Time  `json:"cancellationRequestedAt,omitempty"`
	CancellationRejectionReason *string     `json:"cancellationRejectionReason,omitempty"`
	IsReturnRequested           FlexBool    `json:"isReturnRequested"`
	IsReturnApproved            FlexBool    `json:"isReturnApproved"`
	IsReturnReviewed            FlexBool    `json:"isReturnReviewed"`
	ReturnReviewedBy            *string     `json:"returnReviewedBy,omitempty"`
	ReturnReviewedAt            *time.Time  `json:"returnReviewedAt,omitempty"`
	Items                       []OrderItem `json:"items"`
}

// OrderItem represents a line item in an order. The product snapshot is
// captured at purchase time and immutable thereafter.
type OrderItem struct {
	ID                string          `json:"id"`
	ProductSnapshot   ProductSnapshot `json:"productSnapshot"`
	UnitPrice         float64         `json:"unitPrice"`
	Quantity          int             `json:"quantity"`
	Status            *string         `json:"status,omitempty"`
	RejectionReason   *string         `json:"rejectionReason,omitempty"`
	IsReturnRequested FlexBool        `json:"isReturnRequested"`
	IsReturnApproved  FlexBool        `json:"isReturnApproved"`
	IsReturnReviewed  FlexBool        `json:"isReturnReviewed"`
	ReturnReviewedBy  *string         `json:"returnReviewedBy,omitempty"`
	ReturnReviewedAt  *time.Time      `json:"returnReviewedAt,omitempty"`
}

// ProductSnapshot holds the product details captured at purchase time.
type ProductSnapshot struct {
	Name   string `json:"name"`
	Image  string `json:"image"`
	Vendor string `json:"vendor"`
}

// ReturnFlags groups the fields that determine a return state, at either
// order or item granularity.
type ReturnFlags struct {
	Requested  FlexBool
	Approved   FlexBool
	Reviewed   FlexBool
	ReviewedBy *string
	ReviewedAt *time.Time
}

// ReviewIdentityPresent reports whether both the reviewer identity and the
// review timestamp are recorded. An approval flag without this identity must
// be treated as unset, never as a decline.
func (f ReturnFlags) ReviewIdentityPresent() bool {
	return f.ReviewedBy != nil && *f.ReviewedBy != "" && f.ReviewedAt != nil && !f.ReviewedAt.IsZero()
}

// ReturnFlags extracts the order-level return flags.
func (o *Order) ReturnFlags() ReturnFlags {
	return ReturnFlags{
		Requested:  o.IsReturnRequested,
		Approved:   o.IsReturnApproved,
		Reviewed:   o.IsReturnReviewed,
		ReviewedBy: o.ReturnReviewedBy,
		ReviewedAt: o.ReturnReviewedAt,
	}
}

// ReturnFlags extracts the item-level return flags.
func (i *OrderItem) ReturnFlags() ReturnFlags {
	return ReturnFlags{
		Requested:  i.IsReturnRequested,
		Approved:   i.IsReturnApproved,
		Reviewed:   i.IsReturnReviewed,
		ReviewedBy: i.ReturnReviewedBy,
		ReviewedAt: i.ReturnReviewedAt,
	}
}

// Item returns the line item with the given ID, or nil if the order has no
// such item.
func (o *Order) Item(itemID string) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// CancellationState derives the outcome of a cancellation request. A request
// exists whenever cancellationRequestedAt is set; it resolves to approved when
// the order reached cancelled status, to rejected when a rejection reason is
// recorded, and stays pending otherwise.
func (o *Order) CancellationState() CancellationState {
	if o.CancellationRequestedAt == nil || o.CancellationRequestedAt.IsZero() {
		return CancellationNone
	}
	if o.Status == OrderStatusCancelled {
		return CancellationApproved
	}
	if o.CancellationRejectionReason != nil && *o.CancellationRejectionReason != "" {
		return CancellationRejected
	}
	return CancellationPending
}
