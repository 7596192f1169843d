package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userEntity := user.GetUser()

	userModel := userModelFromEntity(userEntity)
	if err := dbFrom(ctx, r.db).Create(&userModel).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, userEntity.Id)
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var userModel UserModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userEntityFromModel(&userModel), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var userModel UserModel
	if err := dbFrom(ctx, r.db).Where("email = ?", email).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userEntityFromModel(&userModel), nil
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*entities.User, error) {
	var userModel UserModel
	if err := dbFrom(ctx, r.db).Where("reset_token = ?", token).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userEntityFromModel(&userModel), nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	userModel := userModelFromEntity(user)
	// Save with explicit column selection so nil reset-token fields are
	// written back as NULL instead of being skipped.
	return dbFrom(ctx, r.db).Model(&UserModel{}).Where("id = ?", user.Id).
		Select("name", "email", "password", "reset_token", "reset_token_expiry").
		Updates(map[string]interface{}{
			"name":               userModel.Name,
			"email":              userModel.Email,
			"password":           userModel.Password,
			"reset_token":        userModel.ResetToken,
			"reset_token_expiry": userModel.ResetTokenExpiry,
		}).Error
}

func userModelFromEntity(user *entities.User) UserModel {
	return UserModel{
		Id:               user.Id,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
		Name:             user.Name,
		Email:            user.Email,
		Password:         user.Password,
		ResetToken:       user.ResetToken,
		ResetTokenExpiry: user.ResetTokenExpiry,
	}
}

func userEntityFromModel(userModel *UserModel) *entities.User {
	return &entities.User{
		Id:               userModel.Id,
		CreatedAt:        userModel.CreatedAt,
		UpdatedAt:        userModel.UpdatedAt,
		Name:             userModel.Name,
		Email:            userModel.Email,
		Password:         userModel.Password,
		ResetToken:       userModel.ResetToken,
		ResetTokenExpiry: userModel.ResetTokenExpiry,
	}
}
