package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "heatshield/internal/errors"
	"heatshield/internal/model"
	"heatshield/internal/repository"
)

// Field is a value that may be absent from a partial update. Set with a nil
// Value clears the column.
type Field struct {
	Set   bool
	Value *string
}

// ProfileUpdate carries the mutable contact fields. Unset fields are left
// unchanged.
type ProfileUpdate struct {
	Phone    Field
	Location Field
}

// ProfileService reads and updates the authenticated user's profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID model.UserID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID model.UserID, update ProfileUpdate) error
	ChangePassword(ctx context.Context, userID model.UserID, oldPassword, newPassword string) error
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID model.UserID) (*model.User, error) {
	return s.findUser(ctx, userID)
}

// UpdateProfile writes only phone and location.
func (s *profileService) UpdateProfile(ctx context.Context, userID model.UserID, update ProfileUpdate) error {
	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}

	fields := make(map[string]interface{}, 2)
	if update.Phone.Set {
		fields["phone"] = update.Phone.Value
	}
	if update.Location.Set {
		fields["location"] = update.Location.Value
	}
	if err := s.userRepo.UpdateContact(ctx, userID, fields); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ChangePassword replaces the hash after verifying the old password. There
// is no strength policy beyond non-empty and bcrypt's 72-byte limit.
func (s *profileService) ChangePassword(ctx context.Context, userID model.UserID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperrors.ErrMissingPasswords
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(user.PasswordHash, oldPassword) {
		return apperrors.ErrIncorrectPassword
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *profileService) findUser(ctx context.Context, userID model.UserID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
