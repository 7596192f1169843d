package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"booklending-service/internal/application/interfaces"
	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
	"booklending-service/internal/infrastructure"
	pgstore "booklending-service/internal/infrastructure/db/postgres"
)

type testEnv struct {
	db          *gorm.DB
	users       repositories.UserRepository
	books       repositories.BookRepository
	requests    repositories.BorrowRequestRepository
	loans       repositories.LoanRepository
	idempotency repositories.IdempotencyRepository
	transactor  repositories.Transactor

	mailer *captureMailer

	userSvc interfaces.UserService
	catalog interfaces.CatalogService
	lending interfaces.LendingService
}

type captureMailer struct {
	recipient string
	token     string
}

func (m *captureMailer) SendPasswordReset(recipientEmail, token string) error {
	m.recipient = recipientEmail
	m.token = token
	return nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, pgstore.AutoMigrate(db))

	env := &testEnv{
		db:          db,
		users:       pgstore.NewUserRepository(db),
		books:       pgstore.NewBookRepository(db),
		requests:    pgstore.NewBorrowRequestRepository(db),
		loans:       pgstore.NewLoanRepository(db),
		idempotency: pgstore.NewIdempotencyRepository(db),
		transactor:  pgstore.NewTxManager(db),
		mailer:      &captureMailer{},
	}

	jwtService := infrastructure.NewJWTService("test-secret")
	env.userSvc = NewUserService(env.users, jwtService, nil, env.mailer, nil)
	env.catalog = NewCatalogService(env.books, env.requests, env.users, env.transactor)
	env.lending = NewLendingService(env.books, env.requests, env.loans, env.users, env.idempotency, env.transactor, nil, nil)

	return env
}

func (env *testEnv) createUser(t *testing.T, name, email string) *entities.User {
	t.Helper()

	validated, err := entities.NewValidatedUser(entities.NewUser(name, email, "password123"))
	require.NoError(t, err)
	require.NoError(t, validated.HashPassword())

	user, err := env.users.Create(context.Background(), validated)
	require.NoError(t, err)
	return user
}

func (env *testEnv) createBook(t *testing.T, ownerId uuid.UUID, title, isbn string) *entities.Book {
	t.Helper()

	validated, err := entities.NewValidatedBook(entities.NewBook(title, "Some Author", isbn, 2001, nil, nil, ownerId))
	require.NoError(t, err)

	book, err := env.books.Create(context.Background(), validated)
	require.NoError(t, err)
	return book
}
