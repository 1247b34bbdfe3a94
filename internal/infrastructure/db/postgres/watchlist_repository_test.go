package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-tracker-api/internal/domain"
	"stock-tracker-api/internal/domain/entities"
	"stock-tracker-api/internal/infrastructure/db/dbtest"
	"stock-tracker-api/internal/infrastructure/db/postgres"
)

func addEntry(t *testing.T, repo interface {
	Create(context.Context, *entities.WatchlistEntry) (*entities.WatchlistEntry, error)
}, userId uint, symbol string, addedAt time.Time) {
	t.Helper()
	entry := entities.NewWatchlistEntry(userId, symbol, symbol+" Corp")
	entry.AddedAt = addedAt
	_, err := repo.Create(context.Background(), entry)
	require.NoError(t, err)
}

func symbols(entries []*entities.WatchlistEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Symbol)
	}
	return out
}

func TestWatchlistRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewWatchlistRepository(dbtest.Open(t))

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	addEntry(t, repo, 1, "AAA", base)
	addEntry(t, repo, 1, "BBB", base.Add(time.Minute))
	addEntry(t, repo, 1, "CCC", base.Add(2*time.Minute))

	entries, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"CCC", "BBB", "AAA"}, symbols(entries))

	matched, err := repo.SetFavorite(ctx, 1, "AAA", true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	entries, err = repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "CCC", "BBB"}, symbols(entries))
	assert.True(t, entries[0].IsFavorite)
}

func TestWatchlistRepository_ScopedByUser(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewWatchlistRepository(dbtest.Open(t))

	addEntry(t, repo, 1, "AAPL", time.Now())
	addEntry(t, repo, 2, "AAPL", time.Now())

	entries, err := repo.ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 2, entries[0].UserId)

	removed, err := repo.Delete(ctx, 2, "AAPL")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	exists, err := repo.Exists(ctx, 1, "AAPL")
	require.NoError(t, err)
	assert.True(t, exists, "deleting for user 2 must not touch user 1")
}

func TestWatchlistRepository_UniquePerUser(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewWatchlistRepository(dbtest.Open(t))

	addEntry(t, repo, 1, "MSFT", time.Now())

	_, err := repo.Create(ctx, entities.NewWatchlistEntry(1, "MSFT", "Microsoft"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Case-sensitive: a different spelling is a different symbol.
	_, err = repo.Create(ctx, entities.NewWatchlistEntry(1, "msft", "Microsoft"))
	assert.NoError(t, err)
}

func TestWatchlistRepository_SetFavoriteAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewWatchlistRepository(dbtest.Open(t))

	matched, err := repo.SetFavorite(ctx, 1, "NOPE", true)
	require.NoError(t, err)
	assert.Zero(t, matched)

	removed, err := repo.Delete(ctx, 1, "NOPE")
	require.NoError(t, err)
	assert.Zero(t, removed)
}
