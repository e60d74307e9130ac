//go:build wireinject
// +build wireinject

package favorites

import (
	"github.com/google/wire"

	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	"github.com/pixelpour/storefront/internal/favorites/delivery/http"
	"github.com/pixelpour/storefront/internal/favorites/domain"
	"github.com/pixelpour/storefront/internal/favorites/repository"
	"github.com/pixelpour/storefront/internal/notify"
	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/pkg/kvstore"
)

// ProvideFavoritesRepository provides the favorites repository
func ProvideFavoritesRepository(store kvstore.Store) domain.FavoritesRepository {
	return repository.NewKVFavoritesRepository(store)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavoritesRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	store kvstore.Store,
	catalog catalogdomain.CatalogRepository,
	sessions *session.Manager,
	notifier notify.Notifier,
) (*http.FavoritesHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewFavoritesHandler,
	)
	return nil, nil
}
