package interfaces

import (
	"context"

	"stock-tracker-api/internal/application/command"
	"stock-tracker-api/internal/application/query"
)

type AuthService interface {
	Register(ctx context.Context, registerCommand *command.RegisterUserCommand) (*command.AuthCommandResult, error)
	Login(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.AuthCommandResult, error)
	LoginWithGoogle(ctx context.Context, googleCommand *command.GoogleLoginCommand) (*command.AuthCommandResult, error)
	GetProfile(ctx context.Context, userId uint) (*query.UserQueryResult, error)
}
