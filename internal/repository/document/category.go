package document

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// CategoryFields поля категории. Используются и в коллекции categories,
// и как снимок внутри объявлений и спонсоров.
type CategoryFields struct {
	ID       models.TaggedID `bson:"id"`
	Label    string          `bson:"label"`
	Slug     string          `bson:"slug"`
	LegacyID *string         `bson:"_aspRecordId,omitempty"`
}

// CategoryDocument документ коллекции categories.
type CategoryDocument struct {
	Key            primitive.ObjectID `bson:"_id"`
	CategoryFields `bson:",inline"`
}

func CategoryFieldsFrom(c models.Category) CategoryFields {
	return CategoryFields{
		ID:       c.ID,
		Label:    c.Label,
		Slug:     c.Slug,
		LegacyID: clonePtr(c.LegacyID),
	}
}

func (f CategoryFields) ToModel() models.Category {
	return models.Category{
		ID:       f.ID,
		Label:    f.Label,
		Slug:     f.Slug,
		LegacyID: clonePtr(f.LegacyID),
	}
}

// CategoriesFrom копирует список категорий, nil остаётся nil.
func CategoriesFrom(list []models.Category) []CategoryFields {
	if list == nil {
		return nil
	}
	out := make([]CategoryFields, len(list))
	for i, c := range list {
		out[i] = CategoryFieldsFrom(c)
	}
	return out
}

func categoriesToModel(list []CategoryFields) []models.Category {
	if list == nil {
		return nil
	}
	out := make([]models.Category, len(list))
	for i, c := range list {
		out[i] = c.ToModel()
	}
	return out
}

// CategoryFromModel строит документ категории.
func CategoryFromModel(c models.Category) (CategoryDocument, error) {
	k, err := key(c.ID)
	if err != nil {
		return CategoryDocument{}, err
	}
	return CategoryDocument{Key: k, CategoryFields: CategoryFieldsFrom(c)}, nil
}

func (d CategoryDocument) ToModel() models.Category {
	return d.CategoryFields.ToModel()
}
