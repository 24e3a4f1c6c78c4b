package lifecycle

import (
	"strings"

	"jozi-market/internal/model"
)

// MinReasonLength is the minimum trimmed length of a cancellation or return
// reason.
const MinReasonLength = 10

// ReturnSelection is one user-selected line item within a return request.
// The per-item reason is optional; the request-level reason applies when it
// is absent.
type ReturnSelection struct {
	OrderItemID string
	Quantity    int
	Reason      *string
}

// BuildCancellationRequest validates and constructs a cancellation request
// for the given order. Cancellation is only allowed while the order is
// pending or processing and no cancellation request is already open. The
// order service re-enforces both rules; this gate exists so an invalid
// request is rejected before any remote call is made.
func BuildCancellationRequest(order *model.Order, reason string) (*model.CancellationRequest, error) {
	if !order.Status.Cancellable() {
		return nil, model.ErrNotCancellable
	}
	if order.CancellationState() != model.CancellationNone {
		return nil, model.ErrCancellationOpen
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < MinReasonLength {
		return nil, model.ErrReasonTooShort
	}
	return &model.CancellationRequest{
		OrderID: order.OrderID,
		Reason:  reason,
	}, nil
}

// BuildReturnRequest validates and constructs an order-level return request
// covering the selected items, with one shared reason. The order must be
// delivered and must not already have a return open; each selected item is
// checked against its own duplicate flag and purchased quantity.
func BuildReturnRequest(order *model.Order, reason string, selections []ReturnSelection) (*model.ReturnRequest, error) {
	if !order.Status.Returnable() {
		return nil, model.ErrNotReturnable
	}
	if order.IsReturnRequested.True() {
		return nil, model.ErrReturnAlreadyRequested
	}
	if len(selections) == 0 {
		return nil, model.ErrNoItemsSelected
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < MinReasonLength {
		return nil, model.ErrReasonTooShort
	}

	items := make([]model.ReturnItem, 0, len(selections))
	for _, sel := range selections {
		item := order.Item(sel.OrderItemID)
		if item == nil {
			return nil, model.ErrUnknownItem
		}
		if item.IsReturnRequested.True() {
			return nil, model.ErrReturnAlreadyRequested
		}
		if sel.Quantity < 1 || sel.Quantity > item.Quantity {
			return nil, model.ErrQuantityOutOfRange
		}
		items = append(items, model.ReturnItem{
			OrderItemID: sel.OrderItemID,
			Quantity:    sel.Quantity,
			Reason:      sel.Reason,
		})
	}

	return &model.ReturnRequest{
		OrderID: order.OrderID,
		Reason:  reason,
		Items:   items,
	}, nil
}

// BuildItemReturnRequest is the single-item shortcut: one item, its own
// quantity and reason, validated through the same core as the order-level
// path.
func BuildItemReturnRequest(order *model.Order, itemID string, quantity int, reason string) (*model.ReturnRequest, error) {
	return BuildReturnRequest(order, reason, []ReturnSelection{
		{OrderItemID: itemID, Quantity: quantity},
	})
}
