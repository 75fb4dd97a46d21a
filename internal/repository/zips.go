package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
	"github.com/ignatzorin/marketplace-backend/internal/repository/document"
)

// ZipRepository справочник почтовых индексов в коллекции zipcodes.
// Наполняется импортом, площадка только читает его при поиске "рядом с индексом".
type ZipRepository struct {
	add  func(context.Context, models.GeoLocation) (models.GeoLocation, error)
	find func(context.Context, string) (*models.GeoLocation, error)
}

// NewZipRepository создаёт экземпляр репозитория.
func NewZipRepository(db *mongo.Database) *ZipRepository {
	return &ZipRepository{
		add: common.AddItem(db, common.AddConfig[models.GeoLocation, document.ZipDocument]{
			Collection: ZipsCollection,
			ToDocument: document.ZipFromModel,
		}),
		find: common.FindItem(db, common.FindConfig[string, document.ZipDocument, models.GeoLocation]{
			Collection: ZipsCollection,
			ToFilter:   func(zip string) (common.Filter, error) { return common.Filter{"_id": strings.TrimSpace(zip)}, nil },
			ToModel:    document.ZipDocument.ToModel,
		}),
	}
}

// Add сохраняет запись индекса.
func (r *ZipRepository) Add(ctx context.Context, location models.GeoLocation) (models.GeoLocation, error) {
	return r.add(ctx, location)
}

// LookupZip возвращает координаты индекса или nil, если индекс неизвестен.
func (r *ZipRepository) LookupZip(ctx context.Context, zip string) (*models.GeoLocation, error) {
	return r.find(ctx, zip)
}
