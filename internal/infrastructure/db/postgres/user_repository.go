package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stock-tracker-api/internal/domain/entities"
	"stock-tracker-api/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userEntity := user.GetUser()

	userModel := UserModel{
		Email:        userEntity.Email,
		PasswordHash: userEntity.PasswordHash,
		GoogleId:     userEntity.GoogleId,
		Name:         userEntity.Name,
		Avatar:       userEntity.AvatarURL,
		CreatedAt:    userEntity.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return nil, translateError(err)
	}

	// Read back the created user to pick up the generated id and timestamp
	return r.FindById(ctx, userModel.Id)
}

func (r *UserRepository) FindById(ctx context.Context, id uint) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&userModel), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&userModel), nil
}

// FindByGoogleIdOrEmail prefers a match on the Google id over a match on email.
func (r *UserRepository) FindByGoogleIdOrEmail(ctx context.Context, googleId, email string) (*entities.User, error) {
	var userModel UserModel
	err := r.db.WithContext(ctx).Where("google_id = ?", googleId).First(&userModel).Error
	if err == nil {
		return r.mapToEntity(&userModel), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return r.FindByEmail(ctx, email)
}

// LinkGoogleAccount writes the Google id and profile fields. The password hash column is never touched.
func (r *UserRepository) LinkGoogleAccount(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userEntity := user.GetUser()

	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", userEntity.Id).
		Updates(map[string]interface{}{
			"google_id": userEntity.GoogleId,
			"name":      userEntity.Name,
			"avatar":    userEntity.AvatarURL,
		}).Error
	if err != nil {
		return nil, translateError(err)
	}

	// Read back the updated user to ensure data integrity
	return r.FindById(ctx, userEntity.Id)
}

func (r *UserRepository) mapToEntity(userModel *UserModel) *entities.User {
	return &entities.User{
		Id:           userModel.Id,
		Email:        userModel.Email,
		PasswordHash: userModel.PasswordHash,
		GoogleId:     userModel.GoogleId,
		Name:         userModel.Name,
		AvatarURL:    userModel.Avatar,
		CreatedAt:    userModel.CreatedAt,
	}
}
