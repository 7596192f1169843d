package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklending-service/internal/application/command"
	"booklending-service/internal/domain/apperrors"
	"booklending-service/internal/infrastructure"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.userSvc.Register(ctx, &command.RegisterUserCommand{
		Name:     "Rita Requester",
		Email:    "Rita@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "rita@example.com", result.Result.Email)

	// The stored password is a hash, not the plaintext.
	stored, err := env.users.FindByEmail(ctx, "rita@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, stored.CheckPassword("password123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "Rita Requester", "rita@example.com")

	_, err := env.userSvc.Register(ctx, &command.RegisterUserCommand{
		Name:     "Rita Again",
		Email:    "rita@example.com",
		Password: "password123",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userSvc.Register(ctx, &command.RegisterUserCommand{Email: "rita@example.com", Password: "password123"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = env.userSvc.Register(ctx, &command.RegisterUserCommand{Name: "Rita", Email: "not-an-email", Password: "password123"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = env.userSvc.Register(ctx, &command.RegisterUserCommand{Name: "Rita", Email: "rita@example.com", Password: "short"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Rita Requester", "rita@example.com")

	result, err := env.userSvc.Login(ctx, &command.LoginUserCommand{
		Email:    "rita@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, user.Id, result.User.Id)

	// The issued token identifies the user.
	parsedID, err := infrastructure.NewJWTService("test-secret").ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, parsedID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "Rita Requester", "rita@example.com")

	_, err := env.userSvc.Login(ctx, &command.LoginUserCommand{Email: "rita@example.com", Password: "wrong-password"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))

	_, err = env.userSvc.Login(ctx, &command.LoginUserCommand{Email: "nobody@example.com", Password: "password123"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestLoginRateLimited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "Rita Requester", "rita@example.com")

	limited := NewUserService(env.users, infrastructure.NewJWTService("test-secret"), nil, env.mailer,
		infrastructure.NewRateLimiter(time.Minute, 2))

	attempt := &command.LoginUserCommand{Email: "rita@example.com", Password: "wrong-password"}
	for i := 0; i < 2; i++ {
		_, err := limited.Login(ctx, attempt)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	}

	_, err := limited.Login(ctx, attempt)
	assert.True(t, apperrors.IsKind(err, apperrors.KindRateLimited))
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Rita Requester", "rita@example.com")

	result, err := env.userSvc.GetProfile(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, "Rita Requester", result.Result.Name)
	assert.Equal(t, "rita@example.com", result.Result.Email)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "Rita Requester", "rita@example.com")

	_, err := env.userSvc.ForgotPassword(ctx, &command.ForgotPasswordCommand{Email: "rita@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "rita@example.com", env.mailer.recipient)
	require.NotEmpty(t, env.mailer.token)

	_, err = env.userSvc.ResetPassword(ctx, &command.ResetPasswordCommand{
		Token:    env.mailer.token,
		Password: "new-password",
	})
	require.NoError(t, err)

	// The new password works, the old one does not.
	_, err = env.userSvc.Login(ctx, &command.LoginUserCommand{Email: "rita@example.com", Password: "new-password"})
	assert.NoError(t, err)
	_, err = env.userSvc.Login(ctx, &command.LoginUserCommand{Email: "rita@example.com", Password: "password123"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))

	// The token is single use.
	_, err = env.userSvc.ResetPassword(ctx, &command.ResetPasswordCommand{
		Token:    env.mailer.token,
		Password: "another-password",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userSvc.ForgotPassword(context.Background(), &command.ForgotPasswordCommand{Email: "nobody@example.com"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestResetPasswordInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userSvc.ResetPassword(context.Background(), &command.ResetPasswordCommand{
		Token:    "bogus-token",
		Password: "new-password",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
