package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"beststore/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository looks up admin panel accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

type GormUsers struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (r *GormUsers) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &u, nil
}

// EnsureAdmin creates the account, or resets its password when it exists.
func (r *GormUsers) EnsureAdmin(ctx context.Context, username, password string) (*models.AdminUser, error) {
	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := r.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		u = &models.AdminUser{Username: username}
	case err != nil:
		return nil, err
	}
	u.PasswordHash = hash

	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, fmt.Errorf("save user %q: %w", username, err)
	}
	return u, nil
}
