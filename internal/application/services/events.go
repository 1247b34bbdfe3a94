package services

import (
	"context"
	"log"

	"stock-tracker-api/internal/application/interfaces"
)

// Subjects published on the event bus.
const (
	EventUserRegistered         = "users.registered"
	EventUserGoogleCreated      = "users.google_created"
	EventUserGoogleLinked       = "users.google_linked"
	EventWatchlistAdded         = "watchlist.added"
	EventWatchlistFavoriteSaved = "watchlist.favorite_changed"
	EventWatchlistRemoved       = "watchlist.removed"
)

type UserEvent struct {
	UserId uint   `json:"user_id"`
	Email  string `json:"email"`
}

type WatchlistEvent struct {
	UserId     uint   `json:"user_id"`
	Symbol     string `json:"symbol"`
	IsFavorite *bool  `json:"is_favorite,omitempty"`
}

// publish never fails the calling operation.
func publish(ctx context.Context, p interfaces.EventPublisher, subject string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, payload); err != nil {
		log.Printf("[events] publish %s failed: %v", subject, err)
	}
}
