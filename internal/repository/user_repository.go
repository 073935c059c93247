package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"heatshield/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id model.UserID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id model.UserID, at time.Time) error
	UpdateContact(ctx context.Context, id model.UserID, fields map[string]interface{}) error
	UpdatePasswordHash(ctx context.Context, id model.UserID, hash string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id model.UserID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, uint(id)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id model.UserID, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"last_login": at})
}

// UpdateContact writes the given columns. Callers restrict the keys.
func (r *userRepository) UpdateContact(ctx context.Context, id model.UserID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.update(ctx, id, fields)
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id model.UserID, hash string) error {
	return r.update(ctx, id, map[string]interface{}{"password_hash": hash})
}

func (r *userRepository) update(ctx context.Context, id model.UserID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", uint(id)).Updates(fields).Error
}
