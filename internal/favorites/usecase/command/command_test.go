package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	"github.com/pixelpour/storefront/internal/favorites/repository"
	"github.com/pixelpour/storefront/internal/favorites/usecase/query"
	sessiondomain "github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/pkg/kvstore"
)

type allowGate struct{ allowed bool }

func (g allowGate) Authenticated(string) bool { return g.allowed }

type recordingNotifier struct {
	successes []string
	infos     []string
	errors    []string
}

func (n *recordingNotifier) Success(_, message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Info(_, message string)    { n.infos = append(n.infos, message) }
func (n *recordingNotifier) Error(_, message string)   { n.errors = append(n.errors, message) }

var bottle = catalogdomain.Product{
	ID:       1,
	Name:     "Azure Classic",
	Price:    29.99,
	Image:    "/images/bottle-azure.jpg",
	Category: "Classic",
}

var summit = catalogdomain.Product{
	ID:       3,
	Name:     "Summit Insulated",
	Price:    39.99,
	Image:    "/images/bottle-summit.jpg",
	Category: "Insulated",
}

func TestAddFavorite_RequiresLogin(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	handler := NewAddFavoriteHandler(repo, allowGate{allowed: false}, notifier)

	added, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: "guest", Product: bottle})

	require.ErrorIs(t, err, sessiondomain.ErrLoginRequired)
	assert.False(t, added)
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "Please login to add favorites", notifier.errors[0])
}

func TestAddFavorite_NewProduct(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	handler := NewAddFavoriteHandler(repo, allowGate{allowed: true}, notifier)

	added, err := handler.Handle(context.Background(), AddFavoriteCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, notifier.successes, 1)
	assert.Equal(t, `Added "Azure Classic" to favorites`, notifier.successes[0])
}

func TestAddFavorite_DuplicateIsIdempotent(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	handler := NewAddFavoriteHandler(repo, allowGate{allowed: true}, notifier)

	ctx := context.Background()
	_, err := handler.Handle(ctx, AddFavoriteCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)

	added, err := handler.Handle(ctx, AddFavoriteCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)
	assert.False(t, added)

	require.Len(t, notifier.infos, 1)
	assert.Equal(t, `"Azure Classic" is already in your favorites`, notifier.infos[0])

	// Still a single entry
	favorites, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites.Items, 1)
}

func TestRemoveFavorite_AbsentProductIsSilentNoOp(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	handler := NewRemoveFavoriteHandler(repo, notifier)

	favorites, err := handler.Handle(context.Background(), RemoveFavoriteCommand{UserID: "u1", ProductID: 99})
	require.NoError(t, err)
	assert.Empty(t, favorites.Items)
	assert.Empty(t, notifier.infos)
}

func TestRemoveFavorite_KeepsInsertionOrder(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	add := NewAddFavoriteHandler(repo, allowGate{allowed: true}, notifier)
	remove := NewRemoveFavoriteHandler(repo, notifier)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddFavoriteCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)
	_, err = add.Handle(ctx, AddFavoriteCommand{UserID: "u1", Product: summit})
	require.NoError(t, err)

	favorites, err := remove.Handle(ctx, RemoveFavoriteCommand{UserID: "u1", ProductID: bottle.ID})
	require.NoError(t, err)
	require.Len(t, favorites.Items, 1)
	assert.Equal(t, summit.ID, favorites.Items[0].ProductID)
	assert.Contains(t, notifier.infos, `Removed "Azure Classic" from favorites`)
}

func TestClearFavorites(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	add := NewAddFavoriteHandler(repo, allowGate{allowed: true}, notifier)
	clearHandler := NewClearFavoritesHandler(repo, notifier)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddFavoriteCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)

	favorites, err := clearHandler.Handle(ctx, ClearFavoritesCommand{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, favorites.Items)
	assert.Contains(t, notifier.infos, "Favorites cleared")
}

func TestIsFavorite(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	add := NewAddFavoriteHandler(repo, allowGate{allowed: true}, &recordingNotifier{})
	is := query.NewIsFavoriteHandler(repo)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddFavoriteCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)

	saved, err := is.Handle(ctx, query.IsFavoriteQuery{UserID: "u1", ProductID: bottle.ID})
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = is.Handle(ctx, query.IsFavoriteQuery{UserID: "u1", ProductID: summit.ID})
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestFavorites_IsolatedPerUser(t *testing.T) {
	repo := repository.NewKVFavoritesRepository(kvstore.NewMemoryStore())
	add := NewAddFavoriteHandler(repo, allowGate{allowed: true}, &recordingNotifier{})

	ctx := context.Background()
	_, err := add.Handle(ctx, AddFavoriteCommand{UserID: "alice", Product: bottle})
	require.NoError(t, err)

	list := query.NewListFavoritesHandler(repo)
	view, err := list.Handle(ctx, query.ListFavoritesQuery{UserID: "bob"})
	require.NoError(t, err)
	assert.Zero(t, view.Count)
	assert.Empty(t, view.Items)
}

func TestFavorites_SurviveRepositoryRestart(t *testing.T) {
	store := kvstore.NewMemoryStore()
	add := NewAddFavoriteHandler(repository.NewKVFavoritesRepository(store), allowGate{allowed: true}, &recordingNotifier{})

	ctx := context.Background()
	_, err := add.Handle(ctx, AddFavoriteCommand{UserID: "u1", Product: summit})
	require.NoError(t, err)

	fresh := repository.NewKVFavoritesRepository(store)
	favorites, err := fresh.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites.Items, 1)
	assert.Equal(t, "Summit Insulated", favorites.Items[0].Name)
}
