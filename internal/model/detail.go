package model

import "time"

// OrderDetail is the display-ready projection of a raw order: computed status
// label, shipment tracker, financial breakdown and per-item return states.
type OrderDetail struct {
	OrderID                     string            `json:"orderId"`
	FullID                      string            `json:"fullId"`
	DisplayID                   string            `json:"displayId"`
	Status                      OrderStatus       `json:"status"`
	StatusLabel                 string            `json:"statusLabel"`
	StatusCode                  string            `json:"statusCode"`
	CreatedAt                   time.Time         `json:"createdAt"`
	ShippingAddress             string            `json:"shippingAddress"`
	TotalAmount                 float64           `json:"totalAmount"`
	Subtotal                    float64           `json:"subtotal"`
	ShippingCost                float64           `json:"shippingCost"`
	Discount                    float64           `json:"discount"`
	VoucherCode                 *string           `json:"voucherCode,omitempty"`
	PointsEarned                int               `json:"pointsEarned"`
	CancellationState           CancellationState `json:"cancellationState"`
	CancellationRejectionReason *string           `json:"cancellationRejectionReason,omitempty"`
	ReturnState                 ReturnState       `json:"returnState"`
	Tracking                    []TrackingStep    `json:"tracking,omitempty"`
	Items                       []ItemDetail      `json:"items"`
}

// ItemDetail is the display-ready projection of a line item, tagged with its
// independently resolved return state.
type ItemDetail struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Image           string      `json:"image"`
	Vendor          string      `json:"vendor"`
	UnitPrice       float64     `json:"unitPrice"`
	Quantity        int         `json:"quantity"`
	Status          *string     `json:"status,omitempty"`
	RejectionReason *string     `json:"rejectionReason,omitempty"`
	ReturnState     ReturnState `json:"returnState"`
}

// TrackingStep is one step of the 5-step shipment tracker. A step stays
// reached once its condition is met; steps never regress.
type TrackingStep struct {
	Label   string `json:"label"`
	Reached bool   `json:"reached"`
}

// InCancellationFlow reports whether a cancellation request exists for the
// order, in any outcome.
func (d *OrderDetail) InCancellationFlow() bool {
	return d.CancellationState != CancellationNone
}

// InReturnFlow reports whether the order or any of its items is in a return
// flow, in any outcome.
func (d *OrderDetail) InReturnFlow() bool {
	if d.ReturnState != ReturnNone {
		return true
	}
	for _, item := range d.Items {
		if item.ReturnState != ReturnNone {
			return true
		}
	}
	return false
}
