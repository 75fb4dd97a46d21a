// Package document описывает формат хранения сущностей в MongoDB.
// Документ повторяет модель один к одному и добавляет служебные поля
// с префиксом "_": ключ _id, ObjectID связанных сущностей и поля для поиска.
package document

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// GeoJSONPoint точка в формате GeoJSON, coordinates = [долгота, широта].
type GeoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

// NewGeoJSONPoint строит точку из координат.
func NewGeoJSONPoint(p models.GeoPoint) GeoJSONPoint {
	return GeoJSONPoint{Type: "Point", Coordinates: []float64{p.Longitude, p.Latitude}}
}

// GeoPointFrom возвращает точку для поля _location или nil, если адреса нет.
func GeoPointFrom(loc *models.GeoLocation) *GeoJSONPoint {
	if loc == nil {
		return nil
	}
	p := NewGeoJSONPoint(loc.Point())
	return &p
}

// SearchText значение поля _text, по нему ищутся объявления.
func SearchText(title, description string) string {
	return title + " " + description
}

// GeoLocationDoc адрес с координатами.
type GeoLocationDoc struct {
	Longitude float64 `bson:"longitude"`
	Latitude  float64 `bson:"latitude"`
	City      string  `bson:"city"`
	State     string  `bson:"state"`
	Zip       string  `bson:"zip"`
}

func GeoLocationFrom(l models.GeoLocation) GeoLocationDoc {
	return GeoLocationDoc{
		Longitude: l.Longitude,
		Latitude:  l.Latitude,
		City:      l.City,
		State:     l.State,
		Zip:       l.Zip,
	}
}

func (d GeoLocationDoc) ToModel() models.GeoLocation {
	return models.GeoLocation{
		Longitude: d.Longitude,
		Latitude:  d.Latitude,
		City:      d.City,
		State:     d.State,
		Zip:       d.Zip,
	}
}

// GeoLocationPtrFrom то же для необязательного адреса.
func GeoLocationPtrFrom(l *models.GeoLocation) *GeoLocationDoc {
	if l == nil {
		return nil
	}
	d := GeoLocationFrom(*l)
	return &d
}

func geoLocationPtrToModel(d *GeoLocationDoc) *models.GeoLocation {
	if d == nil {
		return nil
	}
	m := d.ToModel()
	return &m
}

// AssetDoc файл во внешнем хранилище.
type AssetDoc struct {
	ID  string `bson:"id"`
	URL string `bson:"url"`
}

func AssetFrom(a *models.Asset) *AssetDoc {
	if a == nil {
		return nil
	}
	return &AssetDoc{ID: a.ID, URL: a.URL}
}

func assetToModel(d *AssetDoc) *models.Asset {
	if d == nil {
		return nil
	}
	return &models.Asset{ID: d.ID, URL: d.URL}
}

// AssetsFrom сохраняет различие между nil и пустым списком.
func AssetsFrom(list []models.Asset) []AssetDoc {
	if list == nil {
		return nil
	}
	out := make([]AssetDoc, len(list))
	for i, a := range list {
		out[i] = AssetDoc{ID: a.ID, URL: a.URL}
	}
	return out
}

func assetsToModel(list []AssetDoc) []models.Asset {
	if list == nil {
		return nil
	}
	out := make([]models.Asset, len(list))
	for i, a := range list {
		out[i] = models.Asset{ID: a.ID, URL: a.URL}
	}
	return out
}

// VideoDoc ссылка на видео.
type VideoDoc struct {
	URL string `bson:"url"`
}

func VideoFrom(v *models.Video) *VideoDoc {
	if v == nil {
		return nil
	}
	return &VideoDoc{URL: v.URL}
}

func videoToModel(d *VideoDoc) *models.Video {
	if d == nil {
		return nil
	}
	return &models.Video{URL: d.URL}
}

// UserRefDoc сокращённая копия пользователя внутри других документов.
type UserRefDoc struct {
	ID       models.TaggedID `bson:"id"`
	Email    string          `bson:"email"`
	FullName string          `bson:"fullName"`
}

func UserRefFrom(u models.UserRef) UserRefDoc {
	return UserRefDoc{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

func (d UserRefDoc) ToModel() models.UserRef {
	return models.UserRef{ID: d.ID, Email: d.Email, FullName: d.FullName}
}

// UserRefPtrFrom то же для необязательной ссылки.
func UserRefPtrFrom(u *models.UserRef) *UserRefDoc {
	if u == nil {
		return nil
	}
	d := UserRefFrom(*u)
	return &d
}

func userRefPtrToModel(d *UserRefDoc) *models.UserRef {
	if d == nil {
		return nil
	}
	m := d.ToModel()
	return &m
}

func key(id models.TaggedID) (primitive.ObjectID, error) {
	return common.StorageKey(id)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
