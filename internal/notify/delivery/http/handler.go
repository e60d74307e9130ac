package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pixelpour/storefront/internal/notify"
	"github.com/pixelpour/storefront/internal/session"
	sessionhttp "github.com/pixelpour/storefront/internal/session/delivery/http"
)

// NotificationHandler exposes the per-user toast feed. Reading the feed
// drains it, so each notification is delivered at most once.
type NotificationHandler struct {
	center   *notify.Center
	sessions *session.Manager
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(center *notify.Center, sessions *session.Manager) *NotificationHandler {
	return &NotificationHandler{center: center, sessions: sessions}
}

// ListNotifications handles GET /notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionhttp.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	notifications := h.center.Drain(userID)
	if notifications == nil {
		notifications = []notify.Notification{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

func (h *NotificationHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *NotificationHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the notification routes behind the auth middleware.
func (h *NotificationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/notifications", sessionhttp.AuthMiddleware(h.sessions, h.ListNotifications)).Methods("GET")
}
