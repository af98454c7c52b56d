package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-api/auth"
	"storefront-api/models"
	"storefront-api/service"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc      service.ServiceInterface
	tokens   *auth.Tokens
	limiter  func(http.Handler) http.Handler
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler returns a Handler instance. A nil limiter disables rate limiting.
func NewHandler(s service.ServiceInterface, tokens *auth.Tokens, limiter func(http.Handler) http.Handler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{
		svc:      s,
		tokens:   tokens,
		limiter:  limiter,
		validate: newValidator(),
		logger:   logger,
	}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(RequestID, AccessLog(h.logger), Recover(h.logger))

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/api-docs/openapi.yaml", h.OpenAPIYAML).Methods("GET")
	r.HandleFunc("/api-docs/openapi.json", h.OpenAPIJSON).Methods("GET")

	// Auth
	a := r.PathPrefix("/auth").Subrouter()
	a.Use(h.limiter)
	a.HandleFunc("/register", h.Register).Methods("POST")
	a.HandleFunc("/login", h.Login).Methods("POST")

	// Products
	p := r.PathPrefix("/products").Subrouter()
	p.Use(h.limiter)
	p.Handle("", h.Authenticate(RequireRoles(models.RoleSeller)(http.HandlerFunc(h.CreateProduct)))).Methods("POST")
	p.HandleFunc("", h.ListProducts).Methods("GET")
	p.HandleFunc("/categories", h.ListCategories).Methods("GET")
	p.HandleFunc("/category/{categoryName}", h.ProductsByCategory).Methods("GET")
	p.HandleFunc("/{productId}", h.GetProduct).Methods("GET")

	// Cart
	c := r.PathPrefix("/cart").Subrouter()
	c.Use(h.Authenticate)
	c.HandleFunc("/add", h.AddToCart).Methods("POST")
	c.HandleFunc("/view", h.ViewCart).Methods("GET")
	c.HandleFunc("/decrement/{productId}", h.DecrementCartItem).Methods("PATCH")
	c.HandleFunc("/remove/{productId}", h.RemoveCartItem).Methods("DELETE", "PATCH")

	// Orders
	o := r.PathPrefix("/order").Subrouter()
	o.Use(h.Authenticate)
	o.HandleFunc("", h.PlaceOrder).Methods("POST")
	o.HandleFunc("/order-history", h.OrderHistory).Methods("GET")
	o.HandleFunc("/{orderId}", h.OrderDetail).Methods("GET")
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Healthy(r.Context()); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"service":  "storefront-api",
			"database": "unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"service":  "storefront-api",
		"database": "ok",
	})
}
