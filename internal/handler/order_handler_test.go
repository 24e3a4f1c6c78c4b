package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jozi-market/internal/lifecycle"
	"jozi-market/internal/model"
	"jozi-market/internal/repository"
	"jozi-market/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ListOrders(ctx context.Context, query service.ListQuery) ([]model.OrderDetail, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) ListRequests(ctx context.Context, orderID string) ([]repository.JournalEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.JournalEntry), args.Error(1)
}

func (m *MockOrderService) SubmitCancellation(ctx context.Context, orderID, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}

func (m *MockOrderService) SubmitReturn(ctx context.Context, orderID, reason string, selections []lifecycle.ReturnSelection) error {
	args := m.Called(ctx, orderID, reason, selections)
	return args.Error(0)
}

func (m *MockOrderService) SubmitItemReturn(ctx context.Context, orderID, itemID string, quantity int, reason string) error {
	args := m.Called(ctx, orderID, itemID, quantity, reason)
	return args.Error(0)
}

func (m *MockOrderService) Processing(orderID string) bool {
	args := m.Called(orderID)
	return args.Bool(0)
}

func newTestHandler(svc *MockOrderService) *OrderHandler {
	return NewOrderHandler(svc, zerolog.Nop())
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListOrders", mock.Anything, service.ListQuery{
			Search: "necklace",
			Filter: lifecycle.FilterDelivered,
		}).Return([]model.OrderDetail{{OrderID: "o-1"}}, nil)
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?search=necklace&filter=delivered", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var details []model.OrderDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
		require.Len(t, details, 1)
		assert.Equal(t, "o-1", details[0].OrderID)
		svc.AssertExpectations(t)
	})

	t.Run("Unknown filter falls back to all", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListOrders", mock.Anything, service.ListQuery{Filter: lifecycle.FilterAll}).
			Return([]model.OrderDetail{}, nil)
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?filter=bogus", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Error - order service unreachable", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListOrders", mock.Anything, mock.Anything).
			Return(nil, model.NewTransportError(""))
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, model.ErrCodeOrderServiceFailure, resp.Error)
	})

	t.Run("Error - method not allowed", func(t *testing.T) {
		h := newTestHandler(new(MockOrderService))

		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("GetOrderDetail", mock.Anything, "o-1").
			Return(&model.OrderDetail{OrderID: "o-1", FullID: "JM-101"}, nil)
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/o-1", nil)
		rec := httptest.NewRecorder()
		h.GetByID(rec, req, "o-1")

		assert.Equal(t, http.StatusOK, rec.Code)
		var detail model.OrderDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, "JM-101", detail.FullID)
	})

	t.Run("Error - not found", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("GetOrderDetail", mock.Anything, "o-99").Return(nil, nil)
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/o-99", nil)
		rec := httptest.NewRecorder()
		h.GetByID(rec, req, "o-99")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderHandler_Cancel(t *testing.T) {
	body := func(reason string) *bytes.Buffer {
		b, _ := json.Marshal(map[string]string{"reason": reason})
		return bytes.NewBuffer(b)
	}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("SubmitCancellation", mock.Anything, "o-1", "Ordered the wrong size").Return(nil)
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/orders/o-1/cancellation", body("Ordered the wrong size"))
		rec := httptest.NewRecorder()
		h.Cancel(rec, req, "o-1")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		var resp statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cancellation_requested", resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("Error - invalid JSON", func(t *testing.T) {
		svc := new(MockOrderService)
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/orders/o-1/cancellation", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		h.Cancel(rec, req, "o-1")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "SubmitCancellation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - domain errors map to status codes", func(t *testing.T) {
		tests := []struct {
			name           string
			err            error
			expectedStatus int
			expectedCode   string
		}{
			{"Validation to 400", model.ErrReasonTooShort, http.StatusBadRequest, model.ErrCodeReasonTooShort},
			{"State to 409", model.ErrNotCancellable, http.StatusConflict, model.ErrCodeNotCancellable},
			{"Open cancellation to 409", model.ErrCancellationOpen, http.StatusConflict, model.ErrCodeCancellationOpen},
			{"In flight to 409", model.ErrRequestInFlight, http.StatusConflict, model.ErrCodeRequestInFlight},
			{"Unknown order to 404", model.ErrOrderNotFound, http.StatusNotFound, model.ErrCodeOrderNotFound},
			{"Transport to 502", model.NewTransportError("cancellation window closed"), http.StatusBadGateway, model.ErrCodeOrderServiceFailure},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := new(MockOrderService)
				svc.On("SubmitCancellation", mock.Anything, "o-1", mock.Anything).Return(tt.err)
				h := newTestHandler(svc)

				req := httptest.NewRequest(http.MethodPost, "/api/orders/o-1/cancellation", body("Ordered the wrong size"))
				rec := httptest.NewRecorder()
				h.Cancel(rec, req, "o-1")

				assert.Equal(t, tt.expectedStatus, rec.Code)
				resp := decodeErrorResponse(t, rec)
				assert.Equal(t, tt.expectedCode, resp.Error)
				assert.NotEmpty(t, resp.Message)
			})
		}
	})
}

func TestOrderHandler_Return(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		itemReason := "Bead string snapped"
		svc := new(MockOrderService)
		svc.On("SubmitReturn", mock.Anything, "o-2", "Wrong color shipped", []lifecycle.ReturnSelection{
			{OrderItemID: "i1", Quantity: 2, Reason: &itemReason},
			{OrderItemID: "i2", Quantity: 1},
		}).Return(nil)
		h := newTestHandler(svc)

		payload := `{
			"reason": "Wrong color shipped",
			"items": [
				{"orderItemId": "i1", "quantity": 2, "reason": "Bead string snapped"},
				{"orderItemId": "i2", "quantity": 1}
			]
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders/o-2/returns", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		h.Return(rec, req, "o-2")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		var resp statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "return_requested", resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("Error - duplicate return to 409", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("SubmitReturn", mock.Anything, "o-2", mock.Anything, mock.Anything).
			Return(model.ErrReturnAlreadyRequested)
		h := newTestHandler(svc)

		payload := `{"reason": "Wrong color shipped", "items": [{"orderItemId": "i1", "quantity": 1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders/o-2/returns", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		h.Return(rec, req, "o-2")

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, model.ErrCodeReturnAlreadyOpen, resp.Error)
	})
}

func TestOrderHandler_ItemReturn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("SubmitItemReturn", mock.Anything, "o-2", "i3", 2, "Wrong color shipped").Return(nil)
		h := newTestHandler(svc)

		payload := `{"quantity": 2, "reason": "Wrong color shipped"}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders/o-2/items/i3/return", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		h.ItemReturn(rec, req, "o-2", "i3")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Error - quantity out of range to 400", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("SubmitItemReturn", mock.Anything, "o-2", "i3", 9, mock.Anything).
			Return(model.ErrQuantityOutOfRange)
		h := newTestHandler(svc)

		payload := `{"quantity": 9, "reason": "Wrong color shipped"}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders/o-2/items/i3/return", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		h.ItemReturn(rec, req, "o-2", "i3")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderHandler_ListRequests(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("ListRequests", mock.Anything, "o-1").
		Return([]repository.JournalEntry{{OrderID: "o-1", Kind: repository.RequestKindCancellation}}, nil)
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/o-1/requests", nil)
	rec := httptest.NewRecorder()
	h.ListRequests(rec, req, "o-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	var entries []repository.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, repository.RequestKindCancellation, entries[0].Kind)
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path     string
		expected []string
	}{
		{"/api/orders", []string{"api", "orders"}},
		{"/api/orders/o-1/", []string{"api", "orders", "o-1"}},
		{"//api//orders", []string{"api", "orders"}},
		{"/", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitPath(tt.path))
		})
	}
}
