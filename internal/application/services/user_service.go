package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"booklending-service/internal/application/command"
	"booklending-service/internal/application/interfaces"
	"booklending-service/internal/application/mapper"
	"booklending-service/internal/application/query"
	"booklending-service/internal/domain/apperrors"
	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
	"booklending-service/internal/infrastructure"
)

// PasswordResetMailer is the notification collaborator: it delivers the
// reset link as a side effect of ForgotPassword.
type PasswordResetMailer interface {
	SendPasswordReset(recipientEmail, token string) error
}

type UserService struct {
	userRepo     repositories.UserRepository
	jwtService   *infrastructure.JWTService
	redisService *infrastructure.RedisService
	mailer       PasswordResetMailer
	rateLimiter  *infrastructure.RateLimiter
}

func NewUserService(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	redisService *infrastructure.RedisService,
	mailer PasswordResetMailer,
	rateLimiter *infrastructure.RateLimiter,
) interfaces.UserService {
	return &UserService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		redisService: redisService,
		mailer:       mailer,
		rateLimiter:  rateLimiter,
	}
}

func (s *UserService) Register(ctx context.Context, registerCommand *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error) {
	if registerCommand.Name == "" || registerCommand.Email == "" || registerCommand.Password == "" {
		return nil, apperrors.Validation("All fields are required")
	}

	newUser := entities.NewUser(registerCommand.Name, registerCommand.Email, registerCommand.Password)

	// Check if a user with this email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if existingUser != nil {
		return nil, apperrors.Conflict("User with this email already exists")
	}

	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := validatedUser.HashPassword(); err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}

	return &command.RegisterUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}, nil
}

func (s *UserService) Login(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	if loginCommand.Email == "" || loginCommand.Password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	if s.rateLimiter != nil && !s.rateLimiter.Allow("login:"+loginCommand.Email) {
		return nil, apperrors.RateLimited("Too many login attempts, please try again later")
	}

	user, err := s.userRepo.FindByEmail(ctx, loginCommand.Email)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.Authentication("Invalid credentials")
	}

	if err := user.CheckPassword(loginCommand.Password); err != nil {
		return nil, apperrors.Authentication("Invalid credentials")
	}

	token, err := s.jwtService.GenerateToken(user.Id, user.Email)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}

	// Cache the token for quick validation; login must not fail when the
	// cache is down.
	if s.redisService != nil {
		go func() {
			if err := s.redisService.SetToken(context.Background(), token, user.Id.String(), infrastructure.TokenTTL); err != nil {
				log.Printf("Failed to store token in Redis: %v", err)
			}
		}()
	}

	return &command.LoginUserCommandResult{
		Token: token,
		User:  mapper.NewUserResultFromEntity(user),
	}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*query.UserQueryResult, error) {
	if s.redisService != nil {
		cachedUser, err := s.redisService.GetProfile(ctx, userID.String())
		if err == nil && cachedUser != nil {
			return &query.UserQueryResult{
				Result: mapper.NewUserResultFromEntity(cachedUser),
			}, nil
		}
	}

	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found")
	}

	if s.redisService != nil {
		cacheable := *user
		cacheable.Password = ""
		cacheable.ResetToken = nil
		cacheable.ResetTokenExpiry = nil
		if err := s.redisService.SetProfile(ctx, userID.String(), &cacheable, 24*time.Hour); err != nil {
			log.Printf("Failed to cache user profile: %v", err)
		}
	}

	return &query.UserQueryResult{
		Result: mapper.NewUserResultFromEntity(user),
	}, nil
}

func (s *UserService) ForgotPassword(ctx context.Context, forgotCommand *command.ForgotPasswordCommand) (*command.ForgotPasswordCommandResult, error) {
	if forgotCommand.Email == "" {
		return nil, apperrors.Validation("Email is required")
	}

	if s.rateLimiter != nil && !s.rateLimiter.Allow("reset:"+forgotCommand.Email) {
		return nil, apperrors.RateLimited("Too many password reset requests, please try again later")
	}

	user, err := s.userRepo.FindByEmail(ctx, forgotCommand.Email)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User with this email does not exist")
	}

	token, err := user.IssueResetToken()
	if err != nil {
		return nil, apperrors.Internal("failed to generate reset token", err)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to store reset token", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
			return nil, apperrors.Internal("failed to send password reset email", err)
		}
	}

	return &command.ForgotPasswordCommandResult{Message: "Password reset email sent"}, nil
}

func (s *UserService) ResetPassword(ctx context.Context, resetCommand *command.ResetPasswordCommand) (*command.ResetPasswordCommandResult, error) {
	if resetCommand.Token == "" || resetCommand.Password == "" {
		return nil, apperrors.Validation("Token and password are required")
	}

	user, err := s.userRepo.FindByResetToken(ctx, resetCommand.Token)
	if err != nil {
		return nil, apperrors.Internal("failed to look up reset token", err)
	}
	if user == nil || !user.ResetTokenValid(time.Now()) {
		return nil, apperrors.Validation("Invalid or expired token")
	}

	user.Password = resetCommand.Password
	validatedUser, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := validatedUser.HashPassword(); err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user.ClearResetToken()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to update password", err)
	}

	// Stale cached profiles would be harmless, but drop them anyway.
	if s.redisService != nil {
		if err := s.redisService.DeleteKey(ctx, "profile:"+user.Id.String()); err != nil {
			log.Printf("Failed to drop cached profile: %v", err)
		}
	}

	return &command.ResetPasswordCommandResult{Message: "Password reset successful"}, nil
}
