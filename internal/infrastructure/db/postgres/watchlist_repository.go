package postgres

import (
	"context"

	"gorm.io/gorm"

	"stock-tracker-api/internal/domain/entities"
	"stock-tracker-api/internal/domain/repositories"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) repositories.WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// ListByUser orders favorites first, then the most recently added.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userId uint) ([]*entities.WatchlistEntry, error) {
	var rows []WatchlistModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("is_favorite DESC").
		Order("added_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*entities.WatchlistEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, r.mapToEntity(&rows[i]))
	}
	return entries, nil
}

func (r *WatchlistRepository) Exists(ctx context.Context, userId uint, symbol string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WatchlistModel{}).
		Where("user_id = ? AND symbol = ?", userId, symbol).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WatchlistRepository) Create(ctx context.Context, entry *entities.WatchlistEntry) (*entities.WatchlistEntry, error) {
	row := WatchlistModel{
		UserId:     entry.UserId,
		Symbol:     entry.Symbol,
		Name:       entry.Name,
		IsFavorite: entry.IsFavorite,
		AddedAt:    entry.AddedAt,
	}

	if err := r.db.WithContext(ctx).Omit("User").Create(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return r.mapToEntity(&row), nil
}

func (r *WatchlistRepository) SetFavorite(ctx context.Context, userId uint, symbol string, isFavorite bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&WatchlistModel{}).
		Where("user_id = ? AND symbol = ?", userId, symbol).
		Update("is_favorite", isFavorite)
	return res.RowsAffected, res.Error
}

func (r *WatchlistRepository) Delete(ctx context.Context, userId uint, symbol string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userId, symbol).
		Delete(&WatchlistModel{})
	return res.RowsAffected, res.Error
}

func (r *WatchlistRepository) mapToEntity(row *WatchlistModel) *entities.WatchlistEntry {
	return &entities.WatchlistEntry{
		Id:         row.Id,
		UserId:     row.UserId,
		Symbol:     row.Symbol,
		Name:       row.Name,
		IsFavorite: row.IsFavorite,
		AddedAt:    row.AddedAt,
	}
}
