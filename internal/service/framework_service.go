package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clearcomply/internal/model"
	"clearcomply/internal/repository"
)

var ErrFrameworkNotFound = errors.New("framework not found")

// FrameworkService manages compliance framework definitions
type FrameworkService struct {
	repo repository.FrameworkRepo
}

// NewFrameworkService creates a new framework service
func NewFrameworkService(repo repository.FrameworkRepo) *FrameworkService {
	return &FrameworkService{repo: repo}
}

// Create validates and stores a framework definition. Definitions are
// immutable afterwards; publish a changed questionnaire as a new framework
// with a bumped version.
func (s *FrameworkService) Create(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	if framework.ID == "" {
		framework.ID = "fw_" + uuid.New().String()[:8]
	}
	if framework.Version == "" {
		framework.Version = "1.0"
	}
	if err := framework.Validate(); err != nil {
		return nil, fmt.Errorf("invalid framework: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, framework.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("framework %s already exists", framework.ID)
	}

	if err := s.repo.Create(ctx, framework); err != nil {
		return nil, err
	}
	return framework, nil
}

// Get returns a framework by id
func (s *FrameworkService) Get(ctx context.Context, id string) (*model.Framework, error) {
	framework, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if framework == nil {
		return nil, ErrFrameworkNotFound
	}
	return framework, nil
}

// List returns all stored frameworks
func (s *FrameworkService) List(ctx context.Context) ([]*model.Framework, error) {
	return s.repo.List(ctx)
}

// Delete removes a framework definition
func (s *FrameworkService) Delete(ctx context.Context, id string) error {
	framework, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if framework == nil {
		return ErrFrameworkNotFound
	}
	return s.repo.Delete(ctx, id)
}
