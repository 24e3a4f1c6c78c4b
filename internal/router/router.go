package router

import (
	"net/http"

	"jozi-market/internal/handler"
	"jozi-market/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Order routes. Path shapes:
	//   /api/orders
	//   /api/orders/{id}
	//   /api/orders/{id}/requests
	//   /api/orders/{id}/cancellation
	//   /api/orders/{id}/returns
	//   /api/orders/{id}/items/{itemId}/return
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		segments := handler.SplitPath(r.URL.Path)

		// Strip the leading "api"/"orders" segments
		if len(segments) < 2 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		segments = segments[2:]

		switch {
		case len(segments) == 0:
			orderHandler.List(w, r)
		case len(segments) == 1:
			orderHandler.GetByID(w, r, segments[0])
		case len(segments) == 2 && segments[1] == "requests":
			orderHandler.ListRequests(w, r, segments[0])
		case len(segments) == 2 && segments[1] == "cancellation":
			orderHandler.Cancel(w, r, segments[0])
		case len(segments) == 2 && segments[1] == "returns":
			orderHandler.Return(w, r, segments[0])
		case len(segments) == 4 && segments[1] == "items" && segments[3] == "return":
			orderHandler.ItemReturn(w, r, segments[0], segments[2])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CorrelationID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
