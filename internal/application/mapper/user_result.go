package mapper

import (
	"stock-tracker-api/internal/application/common"
	"stock-tracker-api/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:     user.Id,
		Email:  user.Email,
		Name:   user.Name,
		Avatar: user.AvatarURL,
	}
}
