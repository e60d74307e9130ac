package query

import (
	"fmt"

	"github.com/pixelpour/storefront/internal/session/domain"
)

// GetProfileQuery represents the query for a shopper's own profile.
type GetProfileQuery struct {
	UserID string
}

// GetProfileHandler handles the get profile query.
type GetProfileHandler struct {
	repo domain.AccountRepository
}

// NewGetProfileHandler creates a new get profile handler.
func NewGetProfileHandler(repo domain.AccountRepository) *GetProfileHandler {
	return &GetProfileHandler{repo: repo}
}

// Handle executes the get profile query.
func (h *GetProfileHandler) Handle(q GetProfileQuery) (*domain.User, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	account, err := h.repo.FindByID(q.UserID)
	if err != nil {
		return nil, err
	}

	user := account.User()
	return &user, nil
}
