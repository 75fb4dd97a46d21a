package service

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// DefaultListingTTL срок жизни объявления после публикации или изменения.
const DefaultListingTTL = 45 * 24 * time.Hour

type ListingRepository interface {
	Add(ctx context.Context, listing models.Listing) (models.Listing, error)
	Find(ctx context.Context, id models.TaggedID) (*models.Listing, error)
	FindBySlug(ctx context.Context, slug string) (*models.Listing, error)
	FindByIDForUser(ctx context.Context, id, userID models.TaggedID) (*models.Listing, error)
	Search(ctx context.Context, s repository.ListingSearch) (common.Page[models.Listing], error)
	Update(ctx context.Context, id models.TaggedID, patch repository.ListingPatch) error
	Delete(ctx context.Context, id models.TaggedID) error
}

type UserFinder interface {
	Find(ctx context.Context, id models.TaggedID) (*models.User, error)
}

type CategoryFinder interface {
	Find(ctx context.Context, id models.TaggedID) (*models.Category, error)
}

// Geocoder определяет координаты по почтовому индексу.
// Возвращает nil, nil, если индекс неизвестен.
type Geocoder interface {
	LookupZip(ctx context.Context, zip string) (*models.GeoLocation, error)
}

// ListingInput данные объявления от владельца.
type ListingInput struct {
	Title       string
	Description string
	CategoryID  models.TaggedID
	Price       *int64
	Images      []models.Asset
	VideoURL    *string
	Location    *models.GeoLocation
	Status      string
}

// AdminListingUpdate правка объявления администратором, nil означает "без изменений".
type AdminListingUpdate struct {
	ID          models.TaggedID
	Title       *string
	Description *string
	CategoryID  *models.TaggedID
	Price       *int64
	Images      *[]models.Asset
	VideoURL    *string
	Location    *models.GeoLocation
	Status      *string
}

// NearZip поиск в радиусе Proximity метров от почтового индекса.
type NearZip struct {
	Zip       string
	Proximity float64
}

// ListingSearchInput параметры поиска, нулевые значения заменяются значениями по умолчанию.
type ListingSearchInput struct {
	Page       int64
	PageSize   int64
	Order      string
	Keywords   string
	CategoryID models.TaggedID
	PosterID   models.TaggedID
	Near       *NearZip
	Count      bool
}

type ListingService struct {
	listings   ListingRepository
	users      UserFinder
	categories CategoryFinder
	geocoder   Geocoder
	ttl        time.Duration
	now        func() int64
}

// NewListingService создаёт сервис объявлений. geocoder может быть nil,
// тогда поиск по индексу недоступен.
func NewListingService(listings ListingRepository, users UserFinder, categories CategoryFinder, geocoder Geocoder, ttl time.Duration) *ListingService {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &ListingService{
		listings:   listings,
		users:      users,
		categories: categories,
		geocoder:   geocoder,
		ttl:        ttl,
		now:        models.Now,
	}
}

func (s *ListingService) expiry(now int64) int64 {
	return now + s.ttl.Milliseconds()
}

// Add публикует новое объявление от имени ownerID.
func (s *ListingService) Add(ctx context.Context, ownerID models.TaggedID, in ListingInput) (models.Listing, error) {
	user, err := s.users.Find(ctx, ownerID)
	if err != nil {
		return models.Listing{}, storeError(err, "listing service: find owner", logrus.Fields{"user_id": ownerID})
	}
	if user == nil {
		return models.Listing{}, apperror.ErrUserNotFound
	}
	category, err := s.category(ctx, in.CategoryID)
	if err != nil {
		return models.Listing{}, err
	}

	now := s.now()
	id := models.NewID(models.ModelListing)
	listing := models.Listing{
		ID:           id,
		Title:        in.Title,
		Slug:         slugify(in.Title + " " + id.Suffix()[:5]),
		Status:       models.ListingStatusAvailable,
		CategoryID:   category.ID,
		Category:     category,
		Description:  in.Description,
		Price:        in.Price,
		DisplayPrice: formatPrice(in.Price),
		Images:       imagesOrEmpty(in.Images),
		Video:        video(in.VideoURL),
		Location:     in.Location,
		UserID:       user.ID,
		User:         user.Ref(),
		AddedAt:      now,
		UpdatedAt:    now,
		ExpiresAt:    s.expiry(now),
	}
	if _, err := s.listings.Add(ctx, listing); err != nil {
		return models.Listing{}, storeError(err, "listing service: add", logrus.Fields{"user_id": ownerID})
	}
	return listing, nil
}

// Update изменяет объявление владельца и продлевает срок его жизни.
func (s *ListingService) Update(ctx context.Context, ownerID, id models.TaggedID, in ListingInput) (models.Listing, error) {
	listing, err := s.listings.FindByIDForUser(ctx, id, ownerID)
	if err != nil {
		return models.Listing{}, storeError(err, "listing service: find for user", logrus.Fields{"listing_id": id, "user_id": ownerID})
	}
	if listing == nil {
		return models.Listing{}, apperror.ErrListingNotFound
	}
	status := in.Status
	if status == "" {
		status = listing.Status
	}
	if !validValue(models.ValidListingStatuses, status) {
		return models.Listing{}, apperror.New(apperror.ErrCodeValidation, "недопустимый статус объявления")
	}

	now := s.now()
	images := imagesOrEmpty(in.Images)
	patch := repository.ListingPatch{
		Title:        &in.Title,
		Description:  &in.Description,
		Status:       &status,
		Price:        in.Price,
		ClearPrice:   in.Price == nil,
		DisplayPrice: ptr(formatPrice(in.Price)),
		Images:       &images,
		Video:        video(in.VideoURL),
		ClearVideo:   in.VideoURL == nil || *in.VideoURL == "",
		Location:     in.Location,
		UpdatedAt:    &now,
		ExpiresAt:    ptr(s.expiry(now)),
	}
	updated := *listing
	if in.CategoryID != "" && in.CategoryID != listing.CategoryID {
		category, err := s.category(ctx, in.CategoryID)
		if err != nil {
			return models.Listing{}, err
		}
		patch.CategoryID = &category.ID
		patch.Category = &category
		updated.CategoryID = category.ID
		updated.Category = category
	}

	if err := s.listings.Update(ctx, id, patch); err != nil {
		return models.Listing{}, storeError(err, "listing service: update", logrus.Fields{"listing_id": id})
	}

	updated.Title = in.Title
	updated.Description = in.Description
	updated.Status = status
	updated.Price = in.Price
	updated.DisplayPrice = *patch.DisplayPrice
	updated.Images = images
	updated.Video = patch.Video
	if in.Location != nil {
		updated.Location = in.Location
	}
	updated.UpdatedAt = now
	updated.ExpiresAt = *patch.ExpiresAt
	return updated, nil
}

// AdminUpdate записывает только поля, которые действительно изменились.
func (s *ListingService) AdminUpdate(ctx context.Context, in AdminListingUpdate) (models.Listing, error) {
	listing, err := s.listings.Find(ctx, in.ID)
	if err != nil {
		return models.Listing{}, storeError(err, "listing service: find", logrus.Fields{"listing_id": in.ID})
	}
	if listing == nil {
		return models.Listing{}, apperror.ErrListingNotFound
	}

	updated := *listing
	var patch repository.ListingPatch

	title, description := listing.Title, listing.Description
	if in.Title != nil {
		title = *in.Title
	}
	if in.Description != nil {
		description = *in.Description
	}
	if title != listing.Title || description != listing.Description {
		patch.Title, patch.Description = &title, &description
		updated.Title, updated.Description = title, description
	}

	if in.CategoryID != nil && *in.CategoryID != listing.CategoryID {
		category, err := s.category(ctx, *in.CategoryID)
		if err != nil {
			return models.Listing{}, err
		}
		patch.CategoryID, patch.Category = &category.ID, &category
		updated.CategoryID, updated.Category = category.ID, category
	}

	if in.Price != nil && (listing.Price == nil || *in.Price != *listing.Price) {
		patch.Price = in.Price
		patch.DisplayPrice = ptr(formatPrice(in.Price))
		updated.Price, updated.DisplayPrice = in.Price, *patch.DisplayPrice
	}

	if in.Images != nil && !slices.Equal(*in.Images, listing.Images) {
		patch.Images = in.Images
		updated.Images = *in.Images
	}

	if in.VideoURL != nil {
		v := video(in.VideoURL)
		switch {
		case v == nil && listing.Video != nil:
			patch.ClearVideo = true
			updated.Video = nil
		case v != nil && (listing.Video == nil || v.URL != listing.Video.URL):
			patch.Video = v
			updated.Video = v
		}
	}

	if in.Location != nil && (listing.Location == nil || *in.Location != *listing.Location) {
		patch.Location = in.Location
		updated.Location = in.Location
	}

	if in.Status != nil && *in.Status != listing.Status {
		if !validValue(models.ValidListingStatuses, *in.Status) {
			return models.Listing{}, apperror.New(apperror.ErrCodeValidation, "недопустимый статус объявления")
		}
		patch.Status = in.Status
		updated.Status = *in.Status
	}

	if patch == (repository.ListingPatch{}) {
		return updated, nil
	}
	now := s.now()
	patch.UpdatedAt = &now
	updated.UpdatedAt = now

	if err := s.listings.Update(ctx, in.ID, patch); err != nil {
		return models.Listing{}, storeError(err, "listing service: admin update", logrus.Fields{"listing_id": in.ID})
	}
	return updated, nil
}

// Delete удаляет объявление владельца.
func (s *ListingService) Delete(ctx context.Context, ownerID, id models.TaggedID) error {
	listing, err := s.listings.FindByIDForUser(ctx, id, ownerID)
	if err != nil {
		return storeError(err, "listing service: find for user", logrus.Fields{"listing_id": id, "user_id": ownerID})
	}
	if listing == nil {
		return apperror.ErrListingNotFound
	}
	return s.AdminDelete(ctx, id)
}

// AdminDelete удаляет любое объявление.
func (s *ListingService) AdminDelete(ctx context.Context, id models.TaggedID) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		return storeError(err, "listing service: delete", logrus.Fields{"listing_id": id})
	}
	return nil
}

// FindByID возвращает объявление по идентификатору.
func (s *ListingService) FindByID(ctx context.Context, id models.TaggedID) (models.Listing, error) {
	listing, err := s.listings.Find(ctx, id)
	if err != nil {
		return models.Listing{}, storeError(err, "listing service: find", logrus.Fields{"listing_id": id})
	}
	if listing == nil {
		return models.Listing{}, apperror.ErrListingNotFound
	}
	return *listing, nil
}

// FindBySlug возвращает объявление по slug.
func (s *ListingService) FindBySlug(ctx context.Context, slug string) (models.Listing, error) {
	listing, err := s.listings.FindBySlug(ctx, slug)
	if err != nil {
		return models.Listing{}, storeError(err, "listing service: find by slug", logrus.Fields{"slug": slug})
	}
	if listing == nil {
		return models.Listing{}, apperror.ErrListingNotFound
	}
	return *listing, nil
}

// Search ищет объявления. По умолчанию первая страница по 25, сортировка updated-at:asc.
func (s *ListingService) Search(ctx context.Context, in ListingSearchInput) (common.Page[models.Listing], error) {
	page, pageSize := paging(in.Page, in.PageSize)
	order := in.Order
	if order == "" {
		order = models.ListingOrderUpdatedAtAsc
	}

	search := repository.ListingSearch{
		Page:       page,
		PageSize:   pageSize,
		Order:      order,
		PosterID:   in.PosterID,
		CategoryID: in.CategoryID,
		Keywords:   in.Keywords,
		Count:      in.Count,
	}

	if in.Near != nil {
		if s.geocoder == nil {
			return common.Page[models.Listing]{}, apperror.New(apperror.ErrCodeBadRequest, "поиск по индексу недоступен")
		}
		loc, err := s.geocoder.LookupZip(ctx, in.Near.Zip)
		if err != nil {
			logger.L().WithError(err).WithField("zip", in.Near.Zip).Warn("listing service: geocoder lookup failed")
			return common.Page[models.Listing]{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось определить координаты")
		}
		if loc == nil {
			return common.Page[models.Listing]{}, apperror.ErrZipNotFound
		}
		search.Near = &repository.GeoNear{Point: loc.Point(), Proximity: in.Near.Proximity}
	}

	result, err := s.listings.Search(ctx, search)
	if err != nil {
		return common.Page[models.Listing]{}, storeError(err, "listing service: search", logrus.Fields{"order": order, "page": page})
	}
	return result, nil
}

func (s *ListingService) category(ctx context.Context, id models.TaggedID) (models.Category, error) {
	category, err := s.categories.Find(ctx, id)
	if err != nil {
		return models.Category{}, storeError(err, "listing service: find category", logrus.Fields{"category_id": id})
	}
	if category == nil {
		return models.Category{}, apperror.ErrCategoryNotFound
	}
	return *category, nil
}

func video(url *string) *models.Video {
	if url == nil || *url == "" {
		return nil
	}
	return &models.Video{URL: *url}
}

func imagesOrEmpty(images []models.Asset) []models.Asset {
	if images == nil {
		return []models.Asset{}
	}
	return images
}
