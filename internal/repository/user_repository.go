package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID resolves a user or reports NOT_FOUND_USER.
func (r *UserRepository) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFoundUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// UpsertFromGoogle finds or creates a user by email and refreshes the
// profile fields Google reported.
func (r *UserRepository) UpsertFromGoogle(ctx context.Context, email, givenName, familyName, image string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"given_name":  givenName,
			"family_name": familyName,
			"image":       image,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{
			Email:      email,
			GivenName:  givenName,
			FamilyName: familyName,
			Image:      image,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// SetRefreshToken stores or clears the Google refresh token.
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID uint, token string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("google_refresh_token", token).Error; err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	return nil
}
