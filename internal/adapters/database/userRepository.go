package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plume/internal/config"
	"plume/internal/core/user"
	userPort "plume/internal/ports/user"
)

// UserRepositoryDatabase implements UserRepository on MySQL.
type UserRepositoryDatabase struct{}

func NewUserRepositoryDatabase() *UserRepositoryDatabase {
	return &UserRepositoryDatabase{}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := config.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, mapNotFound(err, userPort.ErrNotFound)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := config.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapNotFound(err, userPort.ErrNotFound)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := config.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapNotFound(err, userPort.ErrNotFound)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error) {
	var u user.User
	if err := config.DB.WithContext(ctx).Where("username = ? OR email = ?", username, email).First(&u).Error; err != nil {
		return nil, mapNotFound(err, userPort.ErrNotFound)
	}
	return &u, nil
}

// mapNotFound keeps gorm's sentinel out of the core packages.
func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
