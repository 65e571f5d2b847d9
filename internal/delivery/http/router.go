package http

import (
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API routes under /api.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(EnableCORS)
	r.Use(AllowJSON)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)

		r.Get("/products", h.handleGetProducts)
		r.Post("/products", h.handleCreateProduct)
		r.Get("/products/{id}", h.handleGetProduct)

		r.Get("/cart", h.handleGetCart)
		r.Post("/cart", h.handleAddToCart)
		r.Delete("/cart", h.handleClearCart)
		r.Put("/cart/{productId}", h.handleSetCartQuantity)
		r.Delete("/cart/{productId}", h.handleRemoveFromCart)

		r.Post("/checkout", h.handleCheckout)

		r.Get("/orders", h.handleGetOrders)
		r.Get("/orders/{orderId}", h.handleGetOrder)
	})
	return r
}

// EnableCORS is a middleware to allow the browser frontend to connect.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+IdempotencyKeyHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AllowJSON rejects request bodies that are not declared as JSON.
func AllowJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, errInvalidInput, "invalid media type")
			return
		}
		next.ServeHTTP(w, r)
	})
}
