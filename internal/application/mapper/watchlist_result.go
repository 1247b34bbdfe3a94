package mapper

import (
	"stock-tracker-api/internal/application/common"
	"stock-tracker-api/internal/domain/entities"
)

func NewWatchlistEntryResultFromEntity(entry *entities.WatchlistEntry) *common.WatchlistEntryResult {
	return &common.WatchlistEntryResult{
		Symbol:     entry.Symbol,
		Name:       entry.Name,
		IsFavorite: entry.IsFavorite,
		AddedAt:    entry.AddedAt,
	}
}

func NewWatchlistResultFromEntities(entries []*entities.WatchlistEntry) []*common.WatchlistEntryResult {
	results := make([]*common.WatchlistEntryResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, NewWatchlistEntryResultFromEntity(entry))
	}
	return results
}
