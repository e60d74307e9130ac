package repository

import (
	"strings"
	"sync"

	"github.com/pixelpour/storefront/internal/session/domain"
)

// MemoryAccountRepository stores accounts in process memory. The storefront
// deliberately has no account database; accounts last for the process
// lifetime.
type MemoryAccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byEmail map[string]*domain.Account
}

// NewMemoryAccountRepository creates an empty account repository.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]*domain.Account),
	}
}

func (r *MemoryAccountRepository) Create(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(account.Email)
	if _, exists := r.byEmail[email]; exists {
		return domain.ErrEmailTaken
	}

	stored := *account
	r.byID[account.ID] = &stored
	r.byEmail[email] = &stored
	return nil
}

func (r *MemoryAccountRepository) FindByID(id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *account
	return &out, nil
}

func (r *MemoryAccountRepository) FindByEmail(email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *account
	return &out, nil
}

func (r *MemoryAccountRepository) Update(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	newEmail := normalizeEmail(account.Email)
	oldEmail := normalizeEmail(current.Email)
	if newEmail != oldEmail {
		if _, exists := r.byEmail[newEmail]; exists {
			return domain.ErrEmailTaken
		}
		delete(r.byEmail, oldEmail)
	}

	stored := *account
	r.byID[account.ID] = &stored
	r.byEmail[newEmail] = &stored
	return nil
}

func (r *MemoryAccountRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byID)), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
