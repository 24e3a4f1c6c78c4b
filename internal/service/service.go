package service

import (
	"context"

	"jozi-market/internal/lifecycle"
	"jozi-market/internal/model"
	"jozi-market/internal/repository"
)

// ListQuery narrows the transformed order list.
type ListQuery struct {
	Search string
	Filter lifecycle.Filter
}

// OrderService defines the queries and commands of the post-purchase
// workflow. Commands never mutate local state; they submit to the order
// service and re-fetch, because the server is the sole authority on the
// tri-state return-approval fields.
type OrderService interface {
	// ListOrders fetches, transforms and narrows the customer's orders.
	ListOrders(ctx context.Context, query ListQuery) ([]model.OrderDetail, error)

	// GetOrderDetail returns one transformed order, or nil when unknown.
	GetOrderDetail(ctx context.Context, orderID string) (*model.OrderDetail, error)

	// ListRequests returns the journal of submitted requests for an order,
	// newest first.
	ListRequests(ctx context.Context, orderID string) ([]repository.JournalEntry, error)

	// SubmitCancellation validates and submits a cancellation request. On
	// success the order list is re-fetched before the call returns.
	SubmitCancellation(ctx context.Context, orderID, reason string) error

	// SubmitReturn validates and submits an order-level return request
	// covering the selected items with one shared reason.
	SubmitReturn(ctx context.Context, orderID, reason string, selections []lifecycle.ReturnSelection) error

	// SubmitItemReturn validates and submits a single-item return request.
	SubmitItemReturn(ctx context.Context, orderID, itemID string, quantity int, reason string) error

	// Processing reports whether a submission is in flight for the order.
	Processing(orderID string) bool
}
