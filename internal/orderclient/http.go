package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jozi-market/internal/config"
	"jozi-market/internal/model"

	"github.com/rs/zerolog"
)

// httpClient implements Client against the order service's JSON API.
type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// New creates an HTTP-backed order service client.
func New(cfg config.OrderServiceConfig, logger zerolog.Logger) Client {
	// Normalise the base URL - no trailing slash
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &httpClient{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.With().Str("client", "order-service").Logger(),
	}
}

// ListMyOrders returns the customer's raw orders.
func (c *httpClient) ListMyOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// RequestCancellation opens a cancellation request for an order.
func (c *httpClient) RequestCancellation(ctx context.Context, req *model.CancellationRequest) error {
	path := fmt.Sprintf("/orders/%s/cancellation", req.OrderID)
	return c.do(ctx, http.MethodPost, path, req, nil)
}

// CreateReturn opens a return request for one or more items of an order.
func (c *httpClient) CreateReturn(ctx context.Context, req *model.ReturnRequest) error {
	path := fmt.Sprintf("/orders/%s/returns", req.OrderID)
	return c.do(ctx, http.MethodPost, path, req, nil)
}

// do executes one request against the order service and decodes the response
// into out when provided. Remote failures come back as DomainErrors: known
// error codes keep their kind, everything else is a transport error carrying
// the remote message verbatim when one is available.
func (c *httpClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("order service request failed")
		return model.NewTransportError("")
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("order service request")

	if resp.StatusCode >= 400 {
		return c.remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Error().
				Err(err).
				Str("path", path).
				Msg("failed to decode order service response")
			return model.NewTransportError("")
		}
	}

	return nil
}

// remoteError maps an order service error response back onto a DomainError.
// The order service re-enforces all preconditions; a structured rejection
// keeps its kind so the caller surfaces it the same way as a local one.
func (c *httpClient) remoteError(resp *http.Response) error {
	var remote model.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Msg("order service returned an unparseable error")
		return model.NewTransportError("")
	}

	message := remote.Message
	if message == "" {
		message = remote.Error
	}

	if kind, ok := remoteErrorKinds[remote.Error]; ok {
		return model.NewDomainError(kind, remote.Error, message)
	}

	c.logger.Warn().
		Int("status", resp.StatusCode).
		Str("code", remote.Error).
		Msg("order service rejected the request")
	return model.NewTransportError(message)
}

// remoteErrorKinds maps the order service's stable error codes onto local
// error kinds.
var remoteErrorKinds = map[string]model.ErrorKind{
	model.ErrCodeReasonTooShort:     model.ErrKindValidation,
	model.ErrCodeNoItemsSelected:    model.ErrKindValidation,
	model.ErrCodeQuantityOutOfRange: model.ErrKindValidation,
	model.ErrCodeUnknownItem:        model.ErrKindValidation,
	model.ErrCodeNotCancellable:     model.ErrKindState,
	model.ErrCodeCancellationOpen:   model.ErrKindState,
	model.ErrCodeNotReturnable:      model.ErrKindState,
	model.ErrCodeOrderNotFound:      model.ErrKindState,
	model.ErrCodeReturnAlreadyOpen:  model.ErrKindDuplicate,
}
