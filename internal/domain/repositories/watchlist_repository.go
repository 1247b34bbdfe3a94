package repositories

import (
	"context"

	"stock-tracker-api/internal/domain/entities"
)

// WatchlistRepository persists watchlist entries. Every method is scoped by user id.
type WatchlistRepository interface {
	ListByUser(ctx context.Context, userId uint) ([]*entities.WatchlistEntry, error)
	Exists(ctx context.Context, userId uint, symbol string) (bool, error)
	// Create returns domain.ErrDuplicate when (userId, symbol) is already stored.
	Create(ctx context.Context, entry *entities.WatchlistEntry) (*entities.WatchlistEntry, error)
	// SetFavorite returns the number of rows matched.
	SetFavorite(ctx context.Context, userId uint, symbol string, isFavorite bool) (int64, error)
	// Delete returns the number of rows removed.
	Delete(ctx context.Context, userId uint, symbol string) (int64, error)
}
