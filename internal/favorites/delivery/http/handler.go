package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	favdomain "github.com/pixelpour/storefront/internal/favorites/domain"
	"github.com/pixelpour/storefront/internal/favorites/usecase/command"
	"github.com/pixelpour/storefront/internal/favorites/usecase/query"
	"github.com/pixelpour/storefront/internal/notify"
	"github.com/pixelpour/storefront/internal/session"
	sessiondomain "github.com/pixelpour/storefront/internal/session/domain"
	sessionhttp "github.com/pixelpour/storefront/internal/session/delivery/http"
)

// FavoritesHandler handles HTTP requests for the favorites list.
type FavoritesHandler struct {
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	clearHandler  *command.ClearFavoritesHandler

	listHandler *query.ListFavoritesHandler
	isHandler   *query.IsFavoriteHandler

	catalog  catalogdomain.CatalogRepository
	sessions *session.Manager

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewFavoritesHandler creates a new favorites handler.
func NewFavoritesHandler(
	repo favdomain.FavoritesRepository,
	catalog catalogdomain.CatalogRepository,
	sessions *session.Manager,
	notifier notify.Notifier,
) *FavoritesHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_requests_total",
			Help: "Total number of requests to the favorites endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorites_request_duration_seconds",
			Help:    "Duration of favorites endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &FavoritesHandler{
		addHandler:     command.NewAddFavoriteHandler(repo, sessions, notifier),
		removeHandler:  command.NewRemoveFavoriteHandler(repo, notifier),
		clearHandler:   command.NewClearFavoritesHandler(repo, notifier),
		listHandler:    query.NewListFavoritesHandler(repo),
		isHandler:      query.NewIsFavoriteHandler(repo),
		catalog:        catalog,
		sessions:       sessions,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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

func (h *FavoritesHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, http.StatusText(rw.statusCode)).Inc()
	}
}

// ListFavorites handles GET /favorites
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	view, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// AddFavorite handles POST /favorites
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ProductID int `json:"product_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	added, err := h.addHandler.Handle(r.Context(), command.AddFavoriteCommand{
		UserID:  userID,
		Product: *product,
	})
	if err != nil {
		if errors.Is(err, sessiondomain.ErrLoginRequired) {
			h.respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"added":      added,
		"product_id": product.ID,
	})
}

// RemoveFavorite handles DELETE /favorites/{productId}
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
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

	view, err := h.removeHandler.Handle(r.Context(), command.RemoveFavoriteCommand{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondFavorites(w, view)
}

// ClearFavorites handles DELETE /favorites
func (h *FavoritesHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	view, err := h.clearHandler.Handle(r.Context(), command.ClearFavoritesCommand{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondFavorites(w, view)
}

// IsFavorite handles GET /favorites/{productId}
func (h *FavoritesHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
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

	isFavorite, err := h.isHandler.Handle(r.Context(), query.IsFavoriteQuery{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"product_id":  productID,
		"is_favorite": isFavorite,
	})
}

func (h *FavoritesHandler) respondFavorites(w http.ResponseWriter, favorites *favdomain.Favorites) {
	items := favorites.Items
	if items == nil {
		items = []favdomain.Favorite{}
	}
	h.respondJSON(w, http.StatusOK, query.FavoritesView{Items: items, Count: len(items)})
}

func (h *FavoritesHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *FavoritesHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the favorites routes behind the auth middleware.
func (h *FavoritesHandler) RegisterRoutes(router *mux.Router) {
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return sessionhttp.AuthMiddleware(h.sessions, next)
	}

	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", auth(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", auth(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", auth(h.ClearFavorites))).Methods("DELETE")
	router.HandleFunc("/favorites/{productId:[0-9]+}", h.metricsMiddleware("/favorites/{productId}", auth(h.IsFavorite))).Methods("GET")
	router.HandleFunc("/favorites/{productId:[0-9]+}", h.metricsMiddleware("/favorites/{productId}", auth(h.RemoveFavorite))).Methods("DELETE")
}
