// Command mock_order_service runs a local stand-in for the upstream order
// service. It serves a fixed set of orders covering the interesting lifecycle
// states and mutates them on cancellation and return submissions, so the API
// can be exercised end to end without the real service.
//
// Usage:
//
//	go run ./scripts/mock_order_service [-addr :9090]
//	ORDER_SERVICE_URL=http://localhost:9090 go run ./cmd/api
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"jozi-market/internal/model"

	"github.com/rs/zerolog"
)

type store struct {
	mu     sync.Mutex
	orders []model.Order
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func sampleOrders() []model.Order {
	now := time.Now()
	reviewedAt := now.Add(-24 * time.Hour)

	return []model.Order{
		{
			OrderID:     "ord-1001",
			OrderNumber: "JM-2024-000123456",
			Status:      model.OrderStatusProcessing,
			TotalAmount: 349.90,
			CreatedAt:   now.Add(-72 * time.Hour),
			Items: []model.OrderItem{
				{
					ID:              "item-1",
					ProductSnapshot: model.ProductSnapshot{Name: "Maasai Beaded Necklace", Vendor: "Jozi Crafts"},
					UnitPrice:       174.95,
					Quantity:        2,
				},
			},
		},
		{
			OrderID:     "ord-1002",
			OrderNumber: "JM-1002",
			Status:      model.OrderStatusShipped,
			TotalAmount: 1200,
			CreatedAt:   now.Add(-120 * time.Hour),
			Items: []model.OrderItem{
				{
					ID:              "item-2",
					ProductSnapshot: model.ProductSnapshot{Name: "Shweshwe Fabric Bolt", Vendor: "Cape Textiles"},
					UnitPrice:       600,
					Quantity:        2,
				},
			},
		},
		{
			OrderID:     "ord-1003",
			OrderNumber: "JM-1003",
			Status:      model.OrderStatusDelivered,
			TotalAmount: 455,
			CreatedAt:   now.Add(-400 * time.Hour),
			Items: []model.OrderItem{
				{
					ID:              "item-3",
					ProductSnapshot: model.ProductSnapshot{Name: "Rooibos Sampler", Vendor: "Cederberg Estate"},
					UnitPrice:       91,
					Quantity:        5,
				},
			},
		},
		{
			// A declined return: reviewed, with the reviewer identity on
			// record.
			OrderID:           "ord-1004",
			OrderNumber:       "JM-1004",
			Status:            model.OrderStatusDelivered,
			TotalAmount:       780,
			CreatedAt:         now.Add(-600 * time.Hour),
			IsReturnRequested: model.FlexTrue(),
			IsReturnApproved:  model.FlexFalse(),
			IsReturnReviewed:  model.FlexTrue(),
			ReturnReviewedBy:  strPtr("support-agent-7"),
			ReturnReviewedAt:  timePtr(reviewedAt),
			Items: []model.OrderItem{
				{
					ID:              "item-4",
					ProductSnapshot: model.ProductSnapshot{Name: "Karoo Lamb Rub", Vendor: "Karoo Pantry"},
					UnitPrice:       390,
					Quantity:        2,
				},
			},
		},
		{
			// A rejected cancellation.
			OrderID:                     "ord-1005",
			OrderNumber:                 "JM-1005",
			Status:                      model.OrderStatusProcessing,
			TotalAmount:                 95,
			CreatedAt:                   now.Add(-36 * time.Hour),
			CancellationRequestedAt:     timePtr(now.Add(-30 * time.Hour)),
			CancellationRejectionReason: strPtr("Order already handed to the courier"),
			Items: []model.OrderItem{
				{
					ID:              "item-5",
					ProductSnapshot: model.ProductSnapshot{Name: "Protea Notebook", Vendor: "Fynbos Paper Co"},
					UnitPrice:       95,
					Quantity:        1,
				},
			},
		},
	}
}

func (s *store) listOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.orders)
}

func (s *store) submit(w http.ResponseWriter, r *http.Request) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) != 3 || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	orderID, action := segments[1], segments[2]

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].OrderID != orderID {
			continue
		}
		switch action {
		case "cancellation":
			now := time.Now()
			s.orders[i].CancellationRequestedAt = &now
			s.orders[i].CancellationRejectionReason = nil
		case "returns":
			var req model.ReturnRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body")
				return
			}
			s.orders[i].IsReturnRequested = model.FlexTrue()
			for _, item := range req.Items {
				if target := s.orders[i].Item(item.OrderItemID); target != nil {
					target.IsReturnRequested = model.FlexTrue()
				}
			}
		default:
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "Order not found")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: code, Message: message})
}

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	s := &store{orders: sampleOrders()}

	mux := http.NewServeMux()
	mux.HandleFunc("/orders/my", s.listOrders)
	mux.HandleFunc("/orders/", s.submit)

	logger.Info().Str("addr", *addr).Msg("mock order service listening")
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
