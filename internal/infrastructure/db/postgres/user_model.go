package postgres

import (
	"time"
)

type UserModel struct {
	Id           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:320;not null"`
	PasswordHash *string   `gorm:"column:password_hash;size:255"`
	GoogleId     *string   `gorm:"column:google_id;uniqueIndex;size:255"`
	Name         *string   `gorm:"size:255"`
	Avatar       *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string {
	return "users"
}
