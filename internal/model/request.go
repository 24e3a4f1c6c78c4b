package model

// CancellationRequest is the payload submitted to the order service to open a
// cancellation request.
type CancellationRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// ReturnRequest is the payload submitted to the order service to open a
// return, covering one or more line items of a single order.
type ReturnRequest struct {
	OrderID string       `json:"orderId"`
	Reason  string       `json:"reason"`
	Items   []ReturnItem `json:"items"`
}

// ReturnItem selects a line item and quantity within a return request. The
// per-item reason is optional; when absent the request-level reason applies.
type ReturnItem struct {
	OrderItemID string  `json:"orderItemId"`
	Quantity    int     `json:"quantity"`
	Reason      *string `json:"reason,omitempty"`
}
