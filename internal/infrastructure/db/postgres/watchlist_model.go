package postgres

import "time"

type WatchlistModel struct {
	Id         uint      `gorm:"primaryKey"`
	UserId     uint      `gorm:"column:user_id;not null;uniqueIndex:idx_watchlist_user_symbol,priority:1"`
	Symbol     string    `gorm:"size:32;not null;uniqueIndex:idx_watchlist_user_symbol,priority:2"`
	Name       string    `gorm:"size:255;not null"`
	IsFavorite bool      `gorm:"column:is_favorite;not null;default:false"`
	AddedAt    time.Time `gorm:"column:added_at;not null;autoCreateTime"`

	User UserModel `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (WatchlistModel) TableName() string {
	return "watchlist"
}
