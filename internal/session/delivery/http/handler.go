package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/internal/session/usecase/command"
	"github.com/pixelpour/storefront/internal/session/usecase/query"
)

// SessionHandler handles HTTP requests for authentication and profiles.
type SessionHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	updateHandler   *command.UpdateProfileHandler
	logoutHandler   *command.LogoutUserHandler

	profileHandler *query.GetProfileHandler

	sessions *session.Manager
	repo     domain.AccountRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	accountsGauge  prometheus.Gauge
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(repo domain.AccountRepository, sessions *session.Manager) *SessionHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_requests_total",
			Help: "Total number of requests to the session endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "session_request_duration_seconds",
			Help:    "Duration of session endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	accountsGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_registered_accounts",
			Help: "Number of registered shopper accounts",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(accountsGauge)

	return &SessionHandler{
		registerHandler: command.NewRegisterUserHandler(repo, sessions),
		loginHandler:    command.NewLoginUserHandler(repo, sessions),
		updateHandler:   command.NewUpdateProfileHandler(repo, sessions),
		logoutHandler:   command.NewLogoutUserHandler(sessions),
		profileHandler:  query.NewGetProfileHandler(repo),
		sessions:        sessions,
		repo:            repo,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		accountsGauge:   accountsGauge,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics.
func (h *SessionHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, http.StatusText(rw.statusCode)).Inc()
	}
}

// Register handles POST /auth/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	resp, err := h.registerHandler.Handle(cmd)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrEmailTaken) {
			status = http.StatusConflict
		}
		h.respondError(w, status, err.Error())
		return
	}

	h.updateAccountsMetric()
	h.respondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	}

	resp, err := h.loginHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.logoutHandler.Handle(command.LogoutUserCommand{UserID: userID}); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// GetProfile handles GET /users/me
func (h *SessionHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	user, err := h.profileHandler.Handle(query.GetProfileQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/me
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateProfileCommand{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

func (h *SessionHandler) updateAccountsMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.accountsGauge.Set(float64(count))
	}
}

func (h *SessionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *SessionHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the authentication and profile routes.
func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/auth/logout", h.metricsMiddleware("/auth/logout", AuthMiddleware(h.sessions, h.Logout))).Methods("POST")

	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", AuthMiddleware(h.sessions, h.GetProfile))).Methods("GET")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", AuthMiddleware(h.sessions, h.UpdateProfile))).Methods("PUT")
}
