package service

import (
	"context"
	"sync"

	"jozi-market/internal/lifecycle"
	"jozi-market/internal/model"
	"jozi-market/internal/orderclient"
	"jozi-market/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	client  orderclient.Client
	journal repository.JournalRepository
	logger  zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
	// snapshot holds the last-fetched raw orders keyed by order id. It only
	// serves precondition lookups; it is replaced wholesale on every fetch
	// and never patched locally.
	snapshot map[string]model.Order
}

// NewOrderService creates a new order service.
func NewOrderService(
	client orderclient.Client,
	journal repository.JournalRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		client:   client,
		journal:  journal,
		logger:   logger.With().Str("service", "order").Logger(),
		inflight: make(map[string]struct{}),
		snapshot: make(map[string]model.Order),
	}
}

// ListOrders fetches, transforms and narrows the customer's orders.
func (s *orderService) ListOrders(ctx context.Context, query ListQuery) ([]model.OrderDetail, error) {
	orders, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}

	details := lifecycle.TransformOrders(orders)
	return lifecycle.Apply(details, query.Filter, query.Search), nil
}

// GetOrderDetail returns one transformed order, or nil when unknown.
func (s *orderService) GetOrderDetail(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	orders, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].OrderID == orderID {
			detail := lifecycle.Transform(orders[i])
			return &detail, nil
		}
	}

	s.logger.Debug().Str("order_id", orderID).Msg("order not found")
	return nil, nil
}

// ListRequests returns the journal of submitted requests for an order.
func (s *orderService) ListRequests(ctx context.Context, orderID string) ([]repository.JournalEntry, error) {
	return s.journal.ListByOrder(ctx, orderID)
}

// SubmitCancellation validates and submits a cancellation request.
func (s *orderService) SubmitCancellation(ctx context.Context, orderID, reason string) error {
	order, err := s.lookupOrder(ctx, orderID)
	if err != nil {
		return err
	}

	// Preconditions are checked here so an invalid request is rejected
	// before the mutating remote call.
	req, err := lifecycle.BuildCancellationRequest(order, reason)
	if err != nil {
		s.logger.Warn().
			Str("order_id", orderID).
			Err(err).
			Msg("cancellation request rejected")
		return err
	}

	if err := s.begin(orderID); err != nil {
		return err
	}
	defer s.end(orderID)

	if err := s.client.RequestCancellation(ctx, req); err != nil {
		s.logger.Error().
			Str("order_id", orderID).
			Err(err).
			Msg("cancellation submission failed")
		return err
	}

	if _, jerr := s.journal.RecordCancellation(ctx, req); jerr != nil {
		// The submission already succeeded; a journal failure is logged,
		// not surfaced.
		s.logger.Warn().
			Str("order_id", orderID).
			Err(jerr).
			Msg("failed to journal cancellation request")
	}

	s.logger.Info().
		Str("order_id", orderID).
		Msg("cancellation request submitted")

	// The refresh completes before the in-flight marker clears, so a
	// dependent read never observes the pre-submission state.
	if _, err := s.refresh(ctx); err != nil {
		s.logger.Warn().
			Str("order_id", orderID).
			Err(err).
			Msg("order refresh after cancellation failed")
		return err
	}

	return nil
}

// SubmitReturn validates and submits an order-level return request.
func (s *orderService) SubmitReturn(ctx context.Context, orderID, reason string, selections []lifecycle.ReturnSelection) error {
	order, err := s.lookupOrder(ctx, orderID)
	if err != nil {
		return err
	}

	req, err := lifecycle.BuildReturnRequest(order, reason, selections)
	if err != nil {
		s.logger.Warn().
			Str("order_id", orderID).
			Int("item_count", len(selections)).
			Err(err).
			Msg("return request rejected")
		return err
	}

	return s.submitReturn(ctx, req)
}

// SubmitItemReturn validates and submits a single-item return request.
func (s *orderService) SubmitItemReturn(ctx context.Context, orderID, itemID string, quantity int, reason string) error {
	order, err := s.lookupOrder(ctx, orderID)
	if err != nil {
		return err
	}

	req, err := lifecycle.BuildItemReturnRequest(order, itemID, quantity, reason)
	if err != nil {
		s.logger.Warn().
			Str("order_id", orderID).
			Str("item_id", itemID).
			Err(err).
			Msg("item return request rejected")
		return err
	}

	return s.submitReturn(ctx, req)
}

// submitReturn sends a validated return request and re-fetches.
func (s *orderService) submitReturn(ctx context.Context, req *model.ReturnRequest) error {
	if err := s.begin(req.OrderID); err != nil {
		return err
	}
	defer s.end(req.OrderID)

	if err := s.client.CreateReturn(ctx, req); err != nil {
		s.logger.Error().
			Str("order_id", req.OrderID).
			Err(err).
			Msg("return submission failed")
		return err
	}

	if _, jerr := s.journal.RecordReturn(ctx, req); jerr != nil {
		s.logger.Warn().
			Str("order_id", req.OrderID).
			Err(jerr).
			Msg("failed to journal return request")
	}

	s.logger.Info().
		Str("order_id", req.OrderID).
		Int("item_count", len(req.Items)).
		Msg("return request submitted")

	if _, err := s.refresh(ctx); err != nil {
		s.logger.Warn().
			Str("order_id", req.OrderID).
			Err(err).
			Msg("order refresh after return failed")
		return err
	}

	return nil
}

// Processing reports whether a submission is in flight for the order.
func (s *orderService) Processing(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[orderID]
	return busy
}

// refresh fetches the customer's orders and replaces the snapshot.
func (s *orderService) refresh(ctx context.Context) ([]model.Order, error) {
	orders, err := s.client.ListMyOrders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch orders")
		return nil, err
	}

	snapshot := make(map[string]model.Order, len(orders))
	for _, order := range orders {
		snapshot[order.OrderID] = order
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	return orders, nil
}

// lookupOrder resolves an order for precondition checks, preferring the
// last-fetched snapshot and falling back to a fetch when the order is not
// known yet.
func (s *orderService) lookupOrder(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.Lock()
	order, ok := s.snapshot[orderID]
	s.mu.Unlock()
	if ok {
		return &order, nil
	}

	if _, err := s.refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	order, ok = s.snapshot[orderID]
	s.mu.Unlock()
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return &order, nil
}

// begin marks a submission as in flight for the order. Only one cancellation
// or return submission may be in flight per order at a time.
func (s *orderService) begin(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[orderID]; busy {
		return model.ErrRequestInFlight
	}
	s.inflight[orderID] = struct{}{}
	return nil
}

// end clears the in-flight marker. Deferred on both success and failure
// paths so no pending state leaks after an error.
func (s *orderService) end(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, orderID)
}
