package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
)

type ProfileService interface {
	GetByID(ctx context.Context, id int) (*models.Profile, error)
	List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error)
	SetStatus(ctx context.Context, id int, role models.ProfileRole, status models.ProfileStatus) error
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %d: %w", id, err)
	}
	profile.PasswordHash = ""
	return profile, nil
}

func (s *profileService) List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	for i := range profiles {
		profiles[i].PasswordHash = ""
	}
	return profiles, nil
}

// SetStatus is the admin approval switch: it assigns both role and status in
// one step (approve a fan, promote a player, disable an account).
func (s *profileService) SetStatus(ctx context.Context, id int, role models.ProfileRole, status models.ProfileStatus) error {
	switch role {
	case models.RoleFan, models.RolePlayer, models.RoleAdmin:
	default:
		return ErrInvalidRoleOrState
	}
	switch status {
	case models.StatusPending, models.StatusActive, models.StatusDisabled:
	default:
		return ErrInvalidRoleOrState
	}

	err := s.profileRepo.UpdateStatus(ctx, id, role, status)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to update profile %d status: %w", id, err)
	}
	return nil
}
