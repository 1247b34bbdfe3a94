package entities

import "time"

// WatchlistEntry is a symbol tracked by one user. (UserId, Symbol) is unique.
type WatchlistEntry struct {
	Id         uint
	UserId     uint
	Symbol     string
	Name       string
	IsFavorite bool
	AddedAt    time.Time
}

func NewWatchlistEntry(userId uint, symbol, name string) *WatchlistEntry {
	return &WatchlistEntry{
		UserId:  userId,
		Symbol:  symbol,
		Name:    name,
		AddedAt: time.Now(),
	}
}
