package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clearcomply/internal/model"
)

func TestFrameworkService_CreateAssignsIDAndVersion(t *testing.T) {
	repo := &memFrameworkRepo{frameworks: map[string]*model.Framework{}}
	svc := NewFrameworkService(repo)
	ctx := context.Background()

	fw := serviceTestFramework()
	fw.ID = ""
	fw.Version = ""

	created, err := svc.Create(ctx, fw)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "fw_"))
	assert.Equal(t, "1.0", created.Version)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
}

func TestFrameworkService_CreateRejectsInvalidDefinition(t *testing.T) {
	repo := &memFrameworkRepo{frameworks: map[string]*model.Framework{}}
	svc := NewFrameworkService(repo)

	fw := serviceTestFramework()
	fw.Sections = nil

	_, err := svc.Create(context.Background(), fw)
	assert.ErrorContains(t, err, "invalid framework")
}

func TestFrameworkService_CreateRejectsDuplicateID(t *testing.T) {
	repo := &memFrameworkRepo{frameworks: map[string]*model.Framework{}}
	svc := NewFrameworkService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, serviceTestFramework())
	require.NoError(t, err)

	_, err = svc.Create(ctx, serviceTestFramework())
	assert.ErrorContains(t, err, "already exists")
}

func TestFrameworkService_GetMissing(t *testing.T) {
	repo := &memFrameworkRepo{frameworks: map[string]*model.Framework{}}
	svc := NewFrameworkService(repo)

	_, err := svc.Get(context.Background(), "fw_nope")
	assert.ErrorIs(t, err, ErrFrameworkNotFound)
}

func TestFrameworkService_Delete(t *testing.T) {
	repo := &memFrameworkRepo{frameworks: map[string]*model.Framework{}}
	svc := NewFrameworkService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, serviceTestFramework())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrFrameworkNotFound)
}
