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
	"github.com/pixelpour/storefront/internal/review/domain"
	"github.com/pixelpour/storefront/internal/review/usecase/command"
	"github.com/pixelpour/storefront/internal/review/usecase/query"
)

// ReviewHandler handles HTTP requests for product reviews. Reviews are open
// to guests, so none of these routes sit behind the auth middleware.
type ReviewHandler struct {
	addHandler  *command.AddReviewHandler
	listHandler *query.ListReviewsHandler

	catalog catalogdomain.CatalogRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	reviewsPosted  prometheus.Counter
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(repo domain.ReviewRepository, catalog catalogdomain.CatalogRepository) *ReviewHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_requests_total",
			Help: "Total number of requests to the review endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_request_duration_seconds",
			Help:    "Duration of review endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	reviewsPosted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_posted_total",
			Help: "Total number of reviews posted",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(reviewsPosted)

	return &ReviewHandler{
		addHandler:     command.NewAddReviewHandler(repo),
		listHandler:    query.NewListReviewsHandler(repo),
		catalog:        catalog,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		reviewsPosted:  reviewsPosted,
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

func (h *ReviewHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, http.StatusText(rw.statusCode)).Inc()
	}
}

// ListReviews handles GET /products/{id}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if _, err := h.catalog.FindByID(productID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	view, err := h.listHandler.Handle(r.Context(), query.ListReviewsQuery{ProductID: productID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// AddReview handles POST /products/{id}/reviews
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if _, err := h.catalog.FindByID(productID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	var req struct {
		Name    string `json:"name"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.addHandler.Handle(r.Context(), command.AddReviewCommand{
		ProductID: productID,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.reviewsPosted.Inc()
	h.respondJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ReviewHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the review routes.
func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products/{id:[0-9]+}/reviews", h.metricsMiddleware("/products/{id}/reviews", h.ListReviews)).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}/reviews", h.metricsMiddleware("/products/{id}/reviews", h.AddReview)).Methods("POST")
}
