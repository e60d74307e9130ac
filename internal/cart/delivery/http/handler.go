package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cartdomain "github.com/pixelpour/storefront/internal/cart/domain"
	"github.com/pixelpour/storefront/internal/cart/usecase/command"
	"github.com/pixelpour/storefront/internal/cart/usecase/query"
	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	"github.com/pixelpour/storefront/internal/notify"
	"github.com/pixelpour/storefront/internal/session"
	sessiondomain "github.com/pixelpour/storefront/internal/session/domain"
	sessionhttp "github.com/pixelpour/storefront/internal/session/delivery/http"
)

// CartHandler handles HTTP requests for the shopping cart. Every route sits
// behind the session auth middleware; the add command gates again itself.
type CartHandler struct {
	addHandler    *command.AddItemHandler
	updateHandler *command.UpdateQuantityHandler
	removeHandler *command.RemoveItemHandler
	clearHandler  *command.ClearCartHandler

	getHandler *query.GetCartHandler

	catalog  catalogdomain.CatalogRepository
	sessions *session.Manager

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	itemsAdded     prometheus.Counter
}

// NewCartHandler creates a new cart handler. events may be nil when no broker
// is configured.
func NewCartHandler(
	repo cartdomain.CartRepository,
	catalog catalogdomain.CatalogRepository,
	sessions *session.Manager,
	notifier notify.Notifier,
	events command.EventPublisher,
) *CartHandler {
	removeHandler := command.NewRemoveItemHandler(repo, notifier)

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_requests_total",
			Help: "Total number of requests to the cart endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_request_duration_seconds",
			Help:    "Duration of cart endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	itemsAdded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_items_added_total",
			Help: "Total number of successful add-to-cart operations",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(itemsAdded)

	return &CartHandler{
		addHandler:     command.NewAddItemHandler(repo, sessions, notifier, events),
		updateHandler:  command.NewUpdateQuantityHandler(repo, removeHandler),
		removeHandler:  removeHandler,
		clearHandler:   command.NewClearCartHandler(repo, notifier),
		getHandler:     query.NewGetCartHandler(repo),
		catalog:        catalog,
		sessions:       sessions,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		itemsAdded:     itemsAdded,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, http.StatusText(rw.statusCode)).Inc()
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	view, err := h.getHandler.Handle(r.Context(), query.GetCartQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Catalog data enters the core here: resolve the id to a full product
	// record before it reaches the cart.
	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	cmd := command.AddItemCommand{
		UserID:   userID,
		Product:  *product,
		Quantity: req.Quantity,
	}

	cart, err := h.addHandler.Handle(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, sessiondomain.ErrLoginRequired) {
			h.respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.itemsAdded.Inc()
	h.respondCart(w, http.StatusOK, cart)
}

// UpdateQuantity handles PUT /cart/items/{productId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateQuantityCommand{
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}

	cart, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondCart(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	cmd := command.RemoveItemCommand{UserID: userID, ProductID: productID}

	cart, err := h.removeHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondCart(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	cart, err := h.clearHandler.Handle(r.Context(), command.ClearCartCommand{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondCart(w, http.StatusOK, cart)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, cart *cartdomain.Cart) {
	items := cart.Items
	if items == nil {
		items = []cartdomain.LineItem{}
	}
	h.respondJSON(w, status, query.CartView{
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	})
}

func (h *CartHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CartHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the cart routes behind the auth middleware.
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return sessionhttp.AuthMiddleware(h.sessions, next)
	}

	router.HandleFunc("/cart", h.metricsMiddleware("/cart", auth(h.GetCart))).Methods("GET")
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", auth(h.ClearCart))).Methods("DELETE")
	router.HandleFunc("/cart/items", h.metricsMiddleware("/cart/items", auth(h.AddItem))).Methods("POST")
	router.HandleFunc("/cart/items/{productId:[0-9]+}", h.metricsMiddleware("/cart/items/{productId}", auth(h.UpdateQuantity))).Methods("PUT")
	router.HandleFunc("/cart/items/{productId:[0-9]+}", h.metricsMiddleware("/cart/items/{productId}", auth(h.RemoveItem))).Methods("DELETE")
}
