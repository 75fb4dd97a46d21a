package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

type CategoryRepository interface {
	Add(ctx context.Context, category models.Category) (models.Category, error)
	Find(ctx context.Context, id models.TaggedID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id models.TaggedID, patch repository.CategoryPatch) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Add создаёт категорию. Пустой slug строится из названия.
func (s *CategoryService) Add(ctx context.Context, label, slug string) (models.Category, error) {
	if slug == "" {
		slug = slugify(label)
	}
	if label == "" || slug == "" {
		return models.Category{}, apperror.New(apperror.ErrCodeValidation, "название категории обязательно")
	}

	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return models.Category{}, storeError(err, "category service: find by slug", logrus.Fields{"slug": slug})
	}
	if existing != nil {
		return models.Category{}, apperror.ErrSlugTaken
	}

	category := models.Category{
		ID:    models.NewID(models.ModelCategory),
		Label: label,
		Slug:  slug,
	}
	if _, err := s.repo.Add(ctx, category); err != nil {
		return models.Category{}, storeError(err, "category service: add", logrus.Fields{"slug": slug})
	}
	return category, nil
}

// Update меняет название и slug категории.
func (s *CategoryService) Update(ctx context.Context, id models.TaggedID, label, slug string) (models.Category, error) {
	category, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.Category{}, storeError(err, "category service: find", logrus.Fields{"category_id": id})
	}
	if category == nil {
		return models.Category{}, apperror.ErrCategoryNotFound
	}

	if label == "" {
		label = category.Label
	}
	if slug == "" {
		slug = slugify(label)
	}
	if slug != category.Slug {
		taken, err := s.repo.FindBySlug(ctx, slug)
		if err != nil {
			return models.Category{}, storeError(err, "category service: find by slug", logrus.Fields{"slug": slug})
		}
		if taken != nil && taken.ID != id {
			return models.Category{}, apperror.ErrSlugTaken
		}
	}

	if err := s.repo.Update(ctx, id, repository.CategoryPatch{Label: &label, Slug: &slug}); err != nil {
		return models.Category{}, storeError(err, "category service: update", logrus.Fields{"category_id": id})
	}
	category.Label = label
	category.Slug = slug
	return *category, nil
}

// List возвращает все категории.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err, "category service: list", nil)
	}
	return categories, nil
}

// FindBySlug возвращает категорию по slug.
func (s *CategoryService) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return models.Category{}, storeError(err, "category service: find by slug", logrus.Fields{"slug": slug})
	}
	if category == nil {
		return models.Category{}, apperror.ErrCategoryNotFound
	}
	return *category, nil
}
