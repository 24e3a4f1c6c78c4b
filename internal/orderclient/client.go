// Package orderclient is the HTTP client for the remote order service. The
// order service is the sole authority on order state; this client only reads
// orders and submits cancellation/return requests.
package orderclient

import (
	"context"

	"jozi-market/internal/model"
)

// Client defines the remote operations this service consumes.
type Client interface {
	// ListMyOrders returns the customer's raw orders.
	ListMyOrders(ctx context.Context) ([]model.Order, error)

	// RequestCancellation opens a cancellation request for an order.
	RequestCancellation(ctx context.Context, req *model.CancellationRequest) error

	// CreateReturn opens a return request for one or more items of an order.
	CreateReturn(ctx context.Context, req *model.ReturnRequest) error
}
