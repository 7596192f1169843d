package interfaces

import (
	"context"

	"github.com/google/uuid"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/query"
)

type UserService interface {
	Register(ctx context.Context, registerCommand *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error)
	Login(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*query.UserQueryResult, error)
	ForgotPassword(ctx context.Context, forgotCommand *command.ForgotPasswordCommand) (*command.ForgotPasswordCommandResult, error)
	ResetPassword(ctx context.Context, resetCommand *command.ResetPasswordCommand) (*command.ResetPasswordCommandResult, error)
}
