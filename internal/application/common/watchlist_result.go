package common

import "time"

type WatchlistEntryResult struct {
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	IsFavorite bool      `json:"isFavorite"`
	AddedAt    time.Time `json:"addedAt"`
}
