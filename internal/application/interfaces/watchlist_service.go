package interfaces

import (
	"context"

	"stock-tracker-api/internal/application/command"
	"stock-tracker-api/internal/application/query"
	"stock-tracker-api/internal/domain/entities"
)

// WatchlistService operations are always scoped to the authenticated caller.
type WatchlistService interface {
	List(ctx context.Context, caller entities.AuthUser) (*query.WatchlistQueryResult, error)
	Add(ctx context.Context, caller entities.AuthUser, addCommand *command.AddToWatchlistCommand) (*command.WatchlistCommandResult, error)
	ToggleFavorite(ctx context.Context, caller entities.AuthUser, favoriteCommand *command.ToggleFavoriteCommand) (*command.WatchlistCommandResult, error)
	Remove(ctx context.Context, caller entities.AuthUser, removeCommand *command.RemoveFromWatchlistCommand) (*command.WatchlistCommandResult, error)
}
