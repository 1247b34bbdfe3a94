package repositories

import (
	"context"

	"stock-tracker-api/internal/domain/entities"
)

// UserRepository persists users. Find methods return (nil, nil) when nothing matches.
// Create and Update return domain.ErrDuplicate when a unique constraint rejects the write.
type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByGoogleIdOrEmail(ctx context.Context, googleId, email string) (*entities.User, error)
	LinkGoogleAccount(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
}
