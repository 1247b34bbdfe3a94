package command

import "stock-tracker-api/internal/application/common"

type RegisterUserCommand struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,maxbytes=72"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

// AuthCommandResult is returned by every successful sign-in path.
type AuthCommandResult struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    *common.UserResult `json:"user"`
}
