package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
	"github.com/ignatzorin/marketplace-backend/internal/repository/document"
)

// CategoryPatch изменяемые поля категории.
type CategoryPatch struct {
	Label *string
	Slug  *string
}

type categoryUpdate struct {
	id    models.TaggedID
	patch CategoryPatch
}

// CategoryRepository отвечает за коллекцию categories.
type CategoryRepository struct {
	add    func(context.Context, models.Category) (models.Category, error)
	find   func(context.Context, common.Filter) (*models.Category, error)
	list   func(context.Context) ([]models.Category, error)
	update func(context.Context, categoryUpdate) error
}

// NewCategoryRepository создаёт экземпляр репозитория.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		add: common.AddItem(db, common.AddConfig[models.Category, document.CategoryDocument]{
			Collection: CategoriesCollection,
			ToDocument: document.CategoryFromModel,
		}),
		find: common.FindItem(db, common.FindConfig[common.Filter, document.CategoryDocument, models.Category]{
			Collection: CategoriesCollection,
			ToFilter:   byFilter,
			ToModel:    document.CategoryDocument.ToModel,
		}),
		list: common.FindAll(db, common.FindAllConfig[document.CategoryDocument, models.Category]{
			Collection: CategoriesCollection,
			ToModel:    document.CategoryDocument.ToModel,
		}),
		update: common.UpdateOne(db, common.UpdateConfig[categoryUpdate]{
			Collection: CategoriesCollection,
			ToFilter:   func(u categoryUpdate) (common.Filter, error) { return common.ByKey(u.id) },
			ToUpdate: func(u categoryUpdate) (common.Update, error) {
				set := bson.M{}
				setIf(set, "label", u.patch.Label)
				setIf(set, "slug", u.patch.Slug)
				return withSet(set), nil
			},
		}),
	}
}

// Add сохраняет новую категорию.
func (r *CategoryRepository) Add(ctx context.Context, category models.Category) (models.Category, error) {
	return r.add(ctx, category)
}

// Find возвращает категорию по идентификатору или nil.
func (r *CategoryRepository) Find(ctx context.Context, id models.TaggedID) (*models.Category, error) {
	filter, err := common.ByKey(id)
	if err != nil {
		return nil, fmt.Errorf("category repository: find %w", err)
	}
	return r.find(ctx, filter)
}

// FindBySlug возвращает категорию по slug или nil.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.find(ctx, common.Filter{"slug": slug})
}

// FindByLegacyID ищет категорию, перенесённую из старой системы.
func (r *CategoryRepository) FindByLegacyID(ctx context.Context, legacyID string) (*models.Category, error) {
	return r.find(ctx, common.Filter{"_aspRecordId": legacyID})
}

// List возвращает все категории.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	return r.list(ctx)
}

// Update меняет название и/или slug.
func (r *CategoryRepository) Update(ctx context.Context, id models.TaggedID, patch CategoryPatch) error {
	return r.update(ctx, categoryUpdate{id: id, patch: patch})
}
