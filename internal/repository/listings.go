package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
	"github.com/ignatzorin/marketplace-backend/internal/repository/document"
)

// earthRadiusMeters радиус для перевода метров в радианы в $centerSphere.
const earthRadiusMeters = 6378100.0

var listingOrderFields = map[string]string{
	"price":      "price",
	"updated-at": "updatedAt",
}

// GeoNear ограничивает поиск радиусом Proximity (метры) вокруг точки.
type GeoNear struct {
	Point     models.GeoPoint
	Proximity float64
}

// ListingSearch параметры поиска объявлений. Page начинается с 1.
type ListingSearch struct {
	Page       int64
	PageSize   int64
	Order      string
	PosterID   models.TaggedID
	CategoryID models.TaggedID
	Near       *GeoNear
	Keywords   string
	Count      bool
}

// ListingPatch изменяемые поля объявления, nil означает "без изменений".
// Title и Description передаются только вместе, чтобы пересчитать _text.
// CategoryID передаётся вместе со снимком Category.
type ListingPatch struct {
	Title        *string
	Description  *string
	Slug         *string
	Status       *string
	CategoryID   *models.TaggedID
	Category     *models.Category
	Price        *int64
	ClearPrice   bool
	DisplayPrice *string
	Images       *[]models.Asset
	Video        *models.Video
	ClearVideo   bool
	Location     *models.GeoLocation
	UpdatedAt    *int64
	ExpiresAt    *int64
}

type listingUpdate struct {
	id    models.TaggedID
	patch ListingPatch
}

type listingOwner struct {
	id     models.TaggedID
	userID models.TaggedID
}

// ListingRepository отвечает за коллекцию listings.
type ListingRepository struct {
	add    func(context.Context, models.Listing) (models.Listing, error)
	find   func(context.Context, common.Filter) (*models.Listing, error)
	mine   func(context.Context, listingOwner) (*models.Listing, error)
	search func(context.Context, ListingSearch) (common.Page[models.Listing], error)
	update func(context.Context, listingUpdate) error
	remove func(context.Context, models.TaggedID) error
}

// NewListingRepository создаёт экземпляр репозитория.
func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{
		add: common.AddItem(db, common.AddConfig[models.Listing, document.ListingDocument]{
			Collection: ListingsCollection,
			ToDocument: document.ListingFromModel,
		}),
		find: common.FindItem(db, common.FindConfig[common.Filter, document.ListingDocument, models.Listing]{
			Collection: ListingsCollection,
			ToFilter:   byFilter,
			ToModel:    document.ListingDocument.ToModel,
		}),
		mine: common.FindItem(db, common.FindConfig[listingOwner, document.ListingDocument, models.Listing]{
			Collection: ListingsCollection,
			ToFilter:   listingOwnerFilter,
			ToModel:    document.ListingDocument.ToModel,
		}),
		search: common.FindManyItems(db, common.FindManyConfig[ListingSearch, document.ListingDocument, models.Listing]{
			Collection:    ListingsCollection,
			ToFilter:      listingSearchFilter,
			ToCountFilter: listingCountFilter,
			ToOptions:     listingSearchOptions,
			Counted:       func(s ListingSearch) bool { return s.Count },
			ToModel:       document.ListingDocument.ToModel,
		}),
		update: common.UpdateOne(db, common.UpdateConfig[listingUpdate]{
			Collection: ListingsCollection,
			ToFilter:   func(u listingUpdate) (common.Filter, error) { return common.ByKey(u.id) },
			ToUpdate:   func(u listingUpdate) (common.Update, error) { return u.patch.toUpdate() },
		}),
		remove: common.DeleteOne(db, common.DeleteConfig[models.TaggedID]{
			Collection: ListingsCollection,
			ToFilter:   common.ByKey,
		}),
	}
}

// Add сохраняет новое объявление.
func (r *ListingRepository) Add(ctx context.Context, listing models.Listing) (models.Listing, error) {
	return r.add(ctx, listing)
}

// Find возвращает объявление по идентификатору или nil.
func (r *ListingRepository) Find(ctx context.Context, id models.TaggedID) (*models.Listing, error) {
	filter, err := common.ByKey(id)
	if err != nil {
		return nil, fmt.Errorf("listing repository: find %w", err)
	}
	return r.find(ctx, filter)
}

// FindByLegacyID ищет объявление, перенесённое из старой системы.
func (r *ListingRepository) FindByLegacyID(ctx context.Context, legacyID string) (*models.Listing, error) {
	return r.find(ctx, common.Filter{"_aspRecordId": legacyID})
}

// FindBySlug возвращает объявление по slug или nil.
func (r *ListingRepository) FindBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	return r.find(ctx, common.Filter{"slug": slug})
}

// FindByIDForUser возвращает объявление, только если его разместил userID.
func (r *ListingRepository) FindByIDForUser(ctx context.Context, id, userID models.TaggedID) (*models.Listing, error) {
	return r.mine(ctx, listingOwner{id: id, userID: userID})
}

// Search возвращает страницу объявлений.
func (r *ListingRepository) Search(ctx context.Context, s ListingSearch) (common.Page[models.Listing], error) {
	return r.search(ctx, s)
}

// Update применяет частичное обновление и пересчитывает служебные поля.
func (r *ListingRepository) Update(ctx context.Context, id models.TaggedID, patch ListingPatch) error {
	return r.update(ctx, listingUpdate{id: id, patch: patch})
}

// Delete удаляет объявление безвозвратно.
func (r *ListingRepository) Delete(ctx context.Context, id models.TaggedID) error {
	return r.remove(ctx, id)
}

func listingOwnerFilter(o listingOwner) (common.Filter, error) {
	key, err := common.StorageKey(o.id)
	if err != nil {
		return nil, err
	}
	userKey, err := common.StorageKey(o.userID)
	if err != nil {
		return nil, err
	}
	return common.Filter{"_id": key, "_userId": userKey}, nil
}

func listingBaseFilter(s ListingSearch) (common.Filter, error) {
	filter := common.Filter{}
	if s.PosterID != "" {
		key, err := common.StorageKey(s.PosterID)
		if err != nil {
			return nil, err
		}
		filter["_userId"] = key
	}
	if s.CategoryID != "" {
		key, err := common.StorageKey(s.CategoryID)
		if err != nil {
			return nil, err
		}
		filter["_categoryId"] = key
	}
	if strings.TrimSpace(s.Keywords) != "" {
		filter["_text"] = common.ContainsAny(s.Keywords)
	}
	return filter, nil
}

func listingSearchFilter(s ListingSearch) (common.Filter, error) {
	filter, err := listingBaseFilter(s)
	if err != nil {
		return nil, err
	}
	if s.Near != nil {
		filter["_location"] = bson.M{
			"$near": bson.M{
				"$geometry":    document.NewGeoJSONPoint(s.Near.Point),
				"$maxDistance": s.Near.Proximity,
			},
		}
	}
	return filter, nil
}

// listingCountFilter заменяет $near, недопустимый в countDocuments,
// на эквивалентный по охвату $geoWithin.
func listingCountFilter(s ListingSearch) (common.Filter, error) {
	filter, err := listingBaseFilter(s)
	if err != nil {
		return nil, err
	}
	if s.Near != nil {
		filter["_location"] = bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{s.Near.Point.Longitude, s.Near.Point.Latitude},
					s.Near.Proximity / earthRadiusMeters,
				},
			},
		}
	}
	return filter, nil
}

func listingSearchOptions(s ListingSearch) common.FindOptions {
	return common.Paginate(s.Page, s.PageSize, common.ParseOrder(s.Order, listingOrderFields))
}

func (p ListingPatch) toUpdate() (common.Update, error) {
	set := bson.M{}

	if (p.Title == nil) != (p.Description == nil) {
		return nil, fmt.Errorf("%w: title and description go together", common.ErrIncompletePatch)
	}
	if p.Title != nil {
		set["title"] = *p.Title
		set["description"] = *p.Description
		set["_text"] = document.SearchText(*p.Title, *p.Description)
	}

	if (p.CategoryID == nil) != (p.Category == nil) {
		return nil, fmt.Errorf("%w: category id and snapshot go together", common.ErrIncompletePatch)
	}
	if p.CategoryID != nil {
		if p.Category.ID != *p.CategoryID {
			return nil, fmt.Errorf("%w: category snapshot %s does not match %s", common.ErrIncompletePatch, p.Category.ID, *p.CategoryID)
		}
		key, err := common.StorageKey(*p.CategoryID)
		if err != nil {
			return nil, err
		}
		set["categoryId"] = *p.CategoryID
		set["category"] = document.CategoryFieldsFrom(*p.Category)
		set["_categoryId"] = key
	}

	setIf(set, "slug", p.Slug)
	setIf(set, "status", p.Status)
	setIf(set, "displayPrice", p.DisplayPrice)
	setIf(set, "updatedAt", p.UpdatedAt)
	setIf(set, "expiresAt", p.ExpiresAt)

	if p.ClearPrice {
		set["price"] = nil
	} else {
		setIf(set, "price", p.Price)
	}
	if p.Images != nil {
		images := document.AssetsFrom(*p.Images)
		if images == nil {
			images = []document.AssetDoc{}
		}
		set["images"] = images
	}
	if p.ClearVideo {
		set["video"] = nil
	} else if p.Video != nil {
		set["video"] = document.VideoFrom(p.Video)
	}
	if p.Location != nil {
		set["location"] = document.GeoLocationFrom(*p.Location)
		set["_location"] = document.GeoPointFrom(p.Location)
	}

	return withSet(set), nil
}
