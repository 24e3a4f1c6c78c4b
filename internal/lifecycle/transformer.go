package lifecycle

import (
	"math"

	"jozi-market/internal/model"
)

// Fixed business rules for the financial breakdown.
const (
	// FreeShippingThreshold is the order total at and above which shipping
	// is free.
	FreeShippingThreshold = 500.00

	// StandardShippingCost applies below the free-shipping threshold.
	StandardShippingCost = 75.00

	// PointsRate is the loyalty points earned per currency unit spent.
	PointsRate = 0.10
)

// Order numbers at or above this length are compacted for display.
const displayIDMinLength = 15

// Transform maps one raw order into its display aggregate.
func Transform(order model.Order) model.OrderDetail {
	statusLabel, statusCode := deriveStatus(&order)

	shippingCost := 0.00
	if order.TotalAmount < FreeShippingThreshold {
		shippingCost = StandardShippingCost
	}

	items := make([]model.ItemDetail, len(order.Items))
	for i, item := range order.Items {
		items[i] = model.ItemDetail{
			ID:              item.ID,
			Name:            item.ProductSnapshot.Name,
			Image:           item.ProductSnapshot.Image,
			Vendor:          item.ProductSnapshot.Vendor,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			Status:          item.Status,
			RejectionReason: item.RejectionReason,
			ReturnState:     ResolveReturnState(item.ReturnFlags()),
		}
	}

	detail := model.OrderDetail{
		OrderID:                     order.OrderID,
		FullID:                      order.OrderNumber,
		DisplayID:                   DisplayID(order.OrderNumber),
		Status:                      order.Status,
		StatusLabel:                 statusLabel,
		StatusCode:                  statusCode,
		CreatedAt:                   order.CreatedAt,
		ShippingAddress:             order.ShippingAddress,
		TotalAmount:                 order.TotalAmount,
		Subtotal:                    order.TotalAmount - shippingCost,
		ShippingCost:                shippingCost,
		Discount:                    0, // voucher data is not wired through yet
		VoucherCode:                 order.VoucherCode,
		PointsEarned:                int(math.Floor(order.TotalAmount * PointsRate)),
		CancellationState:           order.CancellationState(),
		CancellationRejectionReason: order.CancellationRejectionReason,
		ReturnState:                 ResolveReturnState(order.ReturnFlags()),
		Items:                       items,
	}

	// The shipment tracker is only shown while the order is in neither a
	// cancellation nor a return flow.
	if !detail.InCancellationFlow() && !detail.InReturnFlow() {
		detail.Tracking = trackingSteps(order.Status)
	}

	return detail
}

// TransformOrders maps a batch of raw orders, preserving their order.
func TransformOrders(orders []model.Order) []model.OrderDetail {
	details := make([]model.OrderDetail, len(orders))
	for i, order := range orders {
		details[i] = Transform(order)
	}
	return details
}

// DisplayID compacts long order numbers for display: first 8 characters, an
// ellipsis, then the last 4. Search must always match against the full order
// number, never this truncated form.
func DisplayID(orderNumber string) string {
	if len(orderNumber) < displayIDMinLength {
		return orderNumber
	}
	return orderNumber[:8] + "..." + orderNumber[len(orderNumber)-4:]
}

// deriveStatus resolves the customer-facing status label and code. A
// cancellation in any outcome overrides the shipment status entirely; only
// orders outside a cancellation flow show their shipment status.
func deriveStatus(order *model.Order) (label, code string) {
	switch order.CancellationState() {
	case model.CancellationPending:
		return "Cancellation Pending", "cancellation_pending"
	case model.CancellationApproved:
		return "Cancellation Approved", "cancellation_approved"
	case model.CancellationRejected:
		return "Cancellation Rejected", "cancellation_rejected"
	}
	return order.Status.Label(), string(order.Status)
}

// trackingSteps computes the 5-step shipment tracker. Each step is active
// once its condition is met and never regresses.
func trackingSteps(status model.OrderStatus) []model.TrackingStep {
	return []model.TrackingStep{
		{Label: "Placed", Reached: true},
		{Label: "Processing", Reached: status != model.OrderStatusPending},
		{Label: "Ready to Ship", Reached: status == model.OrderStatusReadyToShip ||
			status == model.OrderStatusShipped || status == model.OrderStatusDelivered},
		{Label: "In Transit", Reached: status == model.OrderStatusShipped ||
			status == model.OrderStatusDelivered},
		{Label: "Delivered", Reached: status == model.OrderStatusDelivered},
	}
}
