package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pixelpour/storefront/internal/catalog/domain"
	"github.com/pixelpour/storefront/internal/catalog/usecase/query"
)

// CatalogHandler handles HTTP requests for the product catalog. All routes
// are public: the catalog is read-only reference data.
type CatalogHandler struct {
	getHandler        *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	searchHandler     *query.SearchProductsHandler
	categoriesHandler *query.ListCategoriesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(repo domain.CatalogRepository) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CatalogHandler{
		getHandler:        query.NewGetProductHandler(repo),
		listHandler:       query.NewListProductsHandler(repo),
		searchHandler:     query.NewSearchProductsHandler(repo),
		categoriesHandler: query.NewListCategoriesHandler(repo),
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
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

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, http.StatusText(rw.statusCode)).Inc()
	}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListProductsQuery{
		Limit:    limit,
		Offset:   offset,
		Category: r.URL.Query().Get("category"),
	}

	products, err := h.listHandler.Handle(q)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// SearchProducts handles GET /products/search?q=
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.searchHandler.Handle(query.SearchProductsQuery{
		Q: r.URL.Query().Get("q"),
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoriesHandler.Handle(query.ListCategoriesQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products/search", h.metricsMiddleware("/products/search", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", h.metricsMiddleware("/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/categories", h.metricsMiddleware("/categories", h.ListCategories)).Methods("GET")
}
