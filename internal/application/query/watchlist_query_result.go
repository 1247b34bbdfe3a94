package query

import "stock-tracker-api/internal/application/common"

type WatchlistQueryResult struct {
	Watchlist []*common.WatchlistEntryResult `json:"watchlist"`
}
