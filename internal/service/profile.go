package service

import (
	"context"
	"errors"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == "" {
		return errors.New("user id is required")
	}
	if profile.Email == "" {
		return errors.New("email is required")
	}
	return s.profileRepo.Upsert(ctx, profile)
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return retryRead(ctx, func() (*domain.Profile, error) {
		return s.profileRepo.GetByUserID(ctx, userID)
	})
}
