//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"

	"github.com/pixelpour/storefront/internal/cart/delivery/http"
	"github.com/pixelpour/storefront/internal/cart/domain"
	"github.com/pixelpour/storefront/internal/cart/repository"
	"github.com/pixelpour/storefront/internal/cart/usecase/command"
	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	"github.com/pixelpour/storefront/internal/notify"
	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/pkg/kvstore"
)

// ProvideCartRepository provides the cart repository
func ProvideCartRepository(store kvstore.Store) domain.CartRepository {
	return repository.NewKVCartRepository(store)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCartRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	store kvstore.Store,
	catalog catalogdomain.CatalogRepository,
	sessions *session.Manager,
	notifier notify.Notifier,
	events command.EventPublisher,
) (*http.CartHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCartHandler,
	)
	return nil, nil
}
