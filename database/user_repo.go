package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by its ID, or nil if there is none
func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrPhone returns the first user holding either the email or the
// phone number, or nil if neither is taken
func (r *UserRepo) FindByEmailOrPhone(ctx context.Context, email, phoneNumber string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone_number = ?", email, phoneNumber).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIdentifier looks a login identifier up as an email or a phone number
func (r *UserRepo) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return r.FindByEmailOrPhone(ctx, identifier, identifier)
}

// Add inserts a new user; the password is hashed by the model hook
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

