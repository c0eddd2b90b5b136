package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"clearcomply/internal/model"
	"clearcomply/internal/repository"
)

var ErrProfileNotFound = errors.New("business profile not found")

// ProfileService manages business profiles used to personalize assessments
type ProfileService struct {
	repo repository.ProfileRepo
}

// NewProfileService creates a new profile service
func NewProfileService(repo repository.ProfileRepo) *ProfileService {
	return &ProfileService{repo: repo}
}

// Create stores a new business profile
func (s *ProfileService) Create(ctx context.Context, profile *model.BusinessProfile) (*model.BusinessProfile, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if profile.ID == "" {
		profile.ID = "prof_" + uuid.New().String()[:8]
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns a profile by id
func (s *ProfileService) Get(ctx context.Context, id string) (*model.BusinessProfile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// List returns all stored profiles
func (s *ProfileService) List(ctx context.Context) ([]*model.BusinessProfile, error) {
	return s.repo.List(ctx)
}

// Update replaces a profile's mutable fields
func (s *ProfileService) Update(ctx context.Context, profile *model.BusinessProfile) (*model.BusinessProfile, error) {
	existing, err := s.repo.GetByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProfileNotFound
	}
	if strings.TrimSpace(profile.Name) == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProfileNotFound
	}
	return s.repo.Delete(ctx, id)
}
