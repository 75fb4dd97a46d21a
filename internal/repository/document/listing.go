package document

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// ListingFields поля объявления без служебных ключей.
// Этот же набор хранится как снимок объявления в жалобах.
type ListingFields struct {
	ID           models.TaggedID `bson:"id"`
	Title        string          `bson:"title"`
	Slug         string          `bson:"slug"`
	Status       string          `bson:"status"`
	CategoryID   models.TaggedID `bson:"categoryId"`
	Category     CategoryFields  `bson:"category"`
	Description  string          `bson:"description"`
	Price        *int64          `bson:"price"`
	DisplayPrice string          `bson:"displayPrice"`
	Images       []AssetDoc      `bson:"images"`
	Video        *VideoDoc       `bson:"video"`
	Location     *GeoLocationDoc `bson:"location"`
	UserID       models.TaggedID `bson:"userId"`
	User         UserRefDoc      `bson:"user"`
	LegacyID     *string         `bson:"_aspRecordId"`
	AddedAt      int64           `bson:"addedAt"`
	UpdatedAt    int64           `bson:"updatedAt"`
	ExpiresAt    int64           `bson:"expiresAt"`
}

// ListingDocument документ коллекции listings.
// _categoryId, _userId, _text и _location вычисляются из полей модели
// и обновляются вместе с ними.
type ListingDocument struct {
	Key           primitive.ObjectID `bson:"_id"`
	ListingFields `bson:",inline"`
	CategoryKey   primitive.ObjectID `bson:"_categoryId"`
	UserKey       primitive.ObjectID `bson:"_userId"`
	Text          string             `bson:"_text"`
	GeoPoint      *GeoJSONPoint      `bson:"_location"`
}

func ListingFieldsFrom(l models.Listing) ListingFields {
	return ListingFields{
		ID:           l.ID,
		Title:        l.Title,
		Slug:         l.Slug,
		Status:       l.Status,
		CategoryID:   l.CategoryID,
		Category:     CategoryFieldsFrom(l.Category),
		Description:  l.Description,
		Price:        clonePtr(l.Price),
		DisplayPrice: l.DisplayPrice,
		Images:       AssetsFrom(l.Images),
		Video:        VideoFrom(l.Video),
		Location:     GeoLocationPtrFrom(l.Location),
		UserID:       l.UserID,
		User:         UserRefFrom(l.User),
		LegacyID:     clonePtr(l.LegacyID),
		AddedAt:      l.AddedAt,
		UpdatedAt:    l.UpdatedAt,
		ExpiresAt:    l.ExpiresAt,
	}
}

func (f ListingFields) ToModel() models.Listing {
	return models.Listing{
		ID:           f.ID,
		Title:        f.Title,
		Slug:         f.Slug,
		Status:       f.Status,
		CategoryID:   f.CategoryID,
		Category:     f.Category.ToModel(),
		Description:  f.Description,
		Price:        clonePtr(f.Price),
		DisplayPrice: f.DisplayPrice,
		Images:       assetsToModel(f.Images),
		Video:        videoToModel(f.Video),
		Location:     geoLocationPtrToModel(f.Location),
		UserID:       f.UserID,
		User:         f.User.ToModel(),
		LegacyID:     clonePtr(f.LegacyID),
		AddedAt:      f.AddedAt,
		UpdatedAt:    f.UpdatedAt,
		ExpiresAt:    f.ExpiresAt,
	}
}

// ListingFromModel строит документ объявления вместе со служебными полями.
func ListingFromModel(l models.Listing) (ListingDocument, error) {
	k, err := key(l.ID)
	if err != nil {
		return ListingDocument{}, err
	}
	categoryKey, err := key(l.CategoryID)
	if err != nil {
		return ListingDocument{}, err
	}
	userKey, err := key(l.UserID)
	if err != nil {
		return ListingDocument{}, err
	}
	return ListingDocument{
		Key:           k,
		ListingFields: ListingFieldsFrom(l),
		CategoryKey:   categoryKey,
		UserKey:       userKey,
		Text:          SearchText(l.Title, l.Description),
		GeoPoint:      GeoPointFrom(l.Location),
	}, nil
}

// ToModel отбрасывает служебные поля.
func (d ListingDocument) ToModel() models.Listing {
	return d.ListingFields.ToModel()
}
