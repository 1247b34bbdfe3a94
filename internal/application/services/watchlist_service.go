package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stock-tracker-api/internal/application/command"
	"stock-tracker-api/internal/application/interfaces"
	"stock-tracker-api/internal/application/mapper"
	"stock-tracker-api/internal/application/query"
	"stock-tracker-api/internal/application/validation"
	"stock-tracker-api/internal/domain"
	"stock-tracker-api/internal/domain/entities"
	"stock-tracker-api/internal/domain/repositories"
)

const msgAlreadyInWatchlist = "Stock already in watchlist"

// WatchlistService scopes every query by the caller's verified user id.
// Symbols are stored as sent apart from surrounding whitespace, so uniqueness is case-sensitive.
type WatchlistService struct {
	watchlistRepo repositories.WatchlistRepository
	events        interfaces.EventPublisher
}

func NewWatchlistService(watchlistRepo repositories.WatchlistRepository, events interfaces.EventPublisher) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		events:        events,
	}
}

func (s *WatchlistService) List(ctx context.Context, caller entities.AuthUser) (*query.WatchlistQueryResult, error) {
	entries, err := s.watchlistRepo.ListByUser(ctx, caller.Id)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("watchlist list: %w", err))
	}

	return &query.WatchlistQueryResult{
		Watchlist: mapper.NewWatchlistResultFromEntities(entries),
	}, nil
}

func (s *WatchlistService) Add(ctx context.Context, caller entities.AuthUser, addCommand *command.AddToWatchlistCommand) (*command.WatchlistCommandResult, error) {
	addCommand.Symbol = strings.TrimSpace(addCommand.Symbol)
	addCommand.Name = strings.TrimSpace(addCommand.Name)
	if err := validation.Struct(addCommand); err != nil {
		return nil, err
	}

	exists, err := s.watchlistRepo.Exists(ctx, caller.Id, addCommand.Symbol)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("watchlist add: exists: %w", err))
	}
	if exists {
		return nil, domain.Conflict(msgAlreadyInWatchlist)
	}

	entry := entities.NewWatchlistEntry(caller.Id, addCommand.Symbol, addCommand.Name)
	if _, err := s.watchlistRepo.Create(ctx, entry); err != nil {
		// Lost a race with a concurrent add of the same symbol.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict(msgAlreadyInWatchlist)
		}
		return nil, domain.Internal(fmt.Errorf("watchlist add: create: %w", err))
	}

	publish(ctx, s.events, EventWatchlistAdded, WatchlistEvent{UserId: caller.Id, Symbol: addCommand.Symbol})

	return &command.WatchlistCommandResult{Message: "Stock added to watchlist"}, nil
}

func (s *WatchlistService) ToggleFavorite(ctx context.Context, caller entities.AuthUser, favoriteCommand *command.ToggleFavoriteCommand) (*command.WatchlistCommandResult, error) {
	if favoriteCommand.IsFavorite == nil {
		return nil, domain.Validation("isFavorite must be a boolean",
			domain.FieldError{Field: "isFavorite", Message: "isFavorite must be a boolean"})
	}
	if favoriteCommand.Symbol == "" {
		return nil, domain.Validation("Symbol is required",
			domain.FieldError{Field: "symbol", Message: "symbol is required"})
	}

	isFavorite := *favoriteCommand.IsFavorite
	matched, err := s.watchlistRepo.SetFavorite(ctx, caller.Id, favoriteCommand.Symbol, isFavorite)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("watchlist favorite: %w", err))
	}
	if matched == 0 {
		return nil, domain.NotFound("Stock not found in watchlist")
	}

	publish(ctx, s.events, EventWatchlistFavoriteSaved, WatchlistEvent{
		UserId:     caller.Id,
		Symbol:     favoriteCommand.Symbol,
		IsFavorite: &isFavorite,
	})

	message := "Removed from favorites"
	if isFavorite {
		message = "Added to favorites"
	}
	return &command.WatchlistCommandResult{Message: message}, nil
}

// Remove succeeds whether or not the symbol was in the watchlist.
func (s *WatchlistService) Remove(ctx context.Context, caller entities.AuthUser, removeCommand *command.RemoveFromWatchlistCommand) (*command.WatchlistCommandResult, error) {
	removed, err := s.watchlistRepo.Delete(ctx, caller.Id, removeCommand.Symbol)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("watchlist remove: %w", err))
	}

	if removed > 0 {
		publish(ctx, s.events, EventWatchlistRemoved, WatchlistEvent{UserId: caller.Id, Symbol: removeCommand.Symbol})
	}

	return &command.WatchlistCommandResult{Message: "Stock removed from watchlist"}, nil
}

var _ interfaces.WatchlistService = (*WatchlistService)(nil)
