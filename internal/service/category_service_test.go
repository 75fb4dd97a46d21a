package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

func TestCategoryService_Add_SlugFromLabel(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo)

	repo.On("FindBySlug", mock.Anything, "bolt-action").Return(nil, nil)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(c models.Category) bool {
		return c.Slug == "bolt-action" && c.Label == "Bolt Action" && c.ID.Is(models.ModelCategory)
	})).Return(nil)

	category, err := svc.Add(context.Background(), "Bolt Action", "")
	require.NoError(t, err)
	assert.Equal(t, "bolt-action", category.Slug)
	repo.AssertExpectations(t)
}

func TestCategoryService_Add_SlugTaken(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo)

	existing := &models.Category{ID: models.NewID(models.ModelCategory), Label: "Rifles", Slug: "rifles"}
	repo.On("FindBySlug", mock.Anything, "rifles").Return(existing, nil)

	_, err := svc.Add(context.Background(), "Rifles", "rifles")
	assert.ErrorIs(t, err, apperror.ErrSlugTaken)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCategoryService_Add_EmptyLabel(t *testing.T) {
	svc := NewCategoryService(new(mockCategoryRepo))

	_, err := svc.Add(context.Background(), "", "")
	assert.True(t, apperror.IsValidation(err))
}

func TestCategoryService_Update(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo)

	id := models.NewID(models.ModelCategory)
	repo.On("Find", mock.Anything, id).Return(&models.Category{ID: id, Label: "Optic", Slug: "optic"}, nil)
	repo.On("FindBySlug", mock.Anything, "optics").Return(nil, nil)
	repo.On("Update", mock.Anything, id, repository.CategoryPatch{Label: ptr("Optics"), Slug: ptr("optics")}).Return(nil)

	category, err := svc.Update(context.Background(), id, "Optics", "")
	require.NoError(t, err)
	assert.Equal(t, "Optics", category.Label)
	assert.Equal(t, "optics", category.Slug)
	repo.AssertExpectations(t)
}

func TestCategoryService_Update_SlugTakenByOther(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo)

	id := models.NewID(models.ModelCategory)
	repo.On("Find", mock.Anything, id).Return(&models.Category{ID: id, Label: "Scopes", Slug: "scopes"}, nil)
	repo.On("FindBySlug", mock.Anything, "optics").Return(&models.Category{ID: models.NewID(models.ModelCategory), Slug: "optics"}, nil)

	_, err := svc.Update(context.Background(), id, "Optics", "")
	assert.ErrorIs(t, err, apperror.ErrSlugTaken)
}

func TestCategoryService_UpdateMissing(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo)

	id := models.NewID(models.ModelCategory)
	repo.On("Find", mock.Anything, id).Return(nil, nil)

	_, err := svc.Update(context.Background(), id, "Optics", "")
	assert.ErrorIs(t, err, apperror.ErrCategoryNotFound)
}

func TestCategoryService_FindBySlug_NotFound(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo)

	repo.On("FindBySlug", mock.Anything, "knives").Return(nil, nil)

	_, err := svc.FindBySlug(context.Background(), "knives")
	assert.True(t, apperror.IsNotFound(err))
}
