package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"jozi-market/internal/lifecycle"
	"jozi-market/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order lifecycle HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// cancellationBody is the payload for POST /api/orders/{id}/cancellation.
type cancellationBody struct {
	Reason string `json:"reason"`
}

// returnBody is the payload for POST /api/orders/{id}/returns.
type returnBody struct {
	Reason string           `json:"reason"`
	Items  []returnItemBody `json:"items"`
}

type returnItemBody struct {
	OrderItemID string  `json:"orderItemId"`
	Quantity    int     `json:"quantity"`
	Reason      *string `json:"reason,omitempty"`
}

// itemReturnBody is the payload for POST /api/orders/{id}/items/{itemId}/return.
type itemReturnBody struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// List handles GET /api/orders requests. Search matches the full order
// number or an item name; filter is one of all, active, delivered, requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	query := service.ListQuery{
		Search: r.URL.Query().Get("search"),
		Filter: lifecycle.ParseFilter(r.URL.Query().Get("filter")),
	}

	orders, err := h.service.ListOrders(r.Context(), query)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request, orderID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	order, err := h.service.GetOrderDetail(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if order == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListRequests handles GET /api/orders/{id}/requests requests.
func (h *OrderHandler) ListRequests(w http.ResponseWriter, r *http.Request, orderID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	entries, err := h.service.ListRequests(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Cancel handles POST /api/orders/{id}/cancellation requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request, orderID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var body cancellationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.SubmitCancellation(r.Context(), orderID, body.Reason); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, statusResponse{Status: "cancellation_requested"})
}

// Return handles POST /api/orders/{id}/returns requests.
func (h *OrderHandler) Return(w http.ResponseWriter, r *http.Request, orderID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var body returnBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	selections := make([]lifecycle.ReturnSelection, len(body.Items))
	for i, item := range body.Items {
		selections[i] = lifecycle.ReturnSelection{
			OrderItemID: item.OrderItemID,
			Quantity:    item.Quantity,
			Reason:      item.Reason,
		}
	}

	if err := h.service.SubmitReturn(r.Context(), orderID, body.Reason, selections); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, statusResponse{Status: "return_requested"})
}

// ItemReturn handles POST /api/orders/{id}/items/{itemId}/return requests.
func (h *OrderHandler) ItemReturn(w http.ResponseWriter, r *http.Request, orderID, itemID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var body itemReturnBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.SubmitItemReturn(r.Context(), orderID, itemID, body.Quantity, body.Reason); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, statusResponse{Status: "return_requested"})
}

// statusResponse acknowledges an accepted submission. The authoritative
// state comes from a subsequent order fetch, never from this response.
type statusResponse struct {
	Status string `json:"status"`
}

// SplitPath splits a request path into its non-empty segments.
func SplitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
