package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/marketplace-backend/internal/fixtures"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

const testNow int64 = 1_700_000_000_000

type listingDeps struct {
	listings   *mockListingRepo
	users      *mockUserRepo
	categories *mockCategoryRepo
	geocoder   *mockGeocoder
}

func newTestListingService() (*ListingService, listingDeps) {
	deps := listingDeps{
		listings:   new(mockListingRepo),
		users:      new(mockUserRepo),
		categories: new(mockCategoryRepo),
		geocoder:   new(mockGeocoder),
	}
	svc := NewListingService(deps.listings, deps.users, deps.categories, deps.geocoder, 0)
	svc.now = fixedClock(testNow)
	return svc, deps
}

func TestListingService_Add(t *testing.T) {
	svc, deps := newTestListingService()
	owner := fixtures.User()
	category := fixtures.Category()

	deps.users.On("Find", mock.Anything, owner.ID).Return(&owner, nil)
	deps.categories.On("Find", mock.Anything, category.ID).Return(&category, nil)
	deps.listings.On("Add", mock.Anything, mock.Anything).Return(nil)

	price := int64(1250)
	listing, err := svc.Add(context.Background(), owner.ID, ListingInput{
		Title:       "Remington 700",
		Description: "Walnut stock",
		CategoryID:  category.ID,
		Price:       &price,
	})
	require.NoError(t, err)

	assert.True(t, listing.ID.Is(models.ModelListing))
	assert.True(t, strings.HasPrefix(listing.Slug, "remington-700-"))
	assert.Equal(t, "remington-700-"+listing.ID.Suffix()[:5], listing.Slug)
	assert.Equal(t, "$1,250", listing.DisplayPrice)
	assert.Equal(t, models.ListingStatusAvailable, listing.Status)
	assert.Equal(t, category, listing.Category)
	assert.Equal(t, owner.Ref(), listing.User)
	assert.NotNil(t, listing.Images)
	assert.Equal(t, testNow, listing.AddedAt)
	assert.Equal(t, testNow+DefaultListingTTL.Milliseconds(), listing.ExpiresAt)
	deps.listings.AssertCalled(t, "Add", mock.Anything, listing)
}

func TestListingService_Add_UnknownCategory(t *testing.T) {
	svc, deps := newTestListingService()
	owner := fixtures.User()
	missing := models.NewID(models.ModelCategory)

	deps.users.On("Find", mock.Anything, owner.ID).Return(&owner, nil)
	deps.categories.On("Find", mock.Anything, missing).Return(nil, nil)

	_, err := svc.Add(context.Background(), owner.ID, ListingInput{Title: "Scope", CategoryID: missing})
	assert.ErrorIs(t, err, apperror.ErrCategoryNotFound)
	deps.listings.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestListingService_Update_NotOwner(t *testing.T) {
	svc, deps := newTestListingService()
	id := models.NewID(models.ModelListing)
	stranger := models.NewID(models.ModelUser)

	deps.listings.On("FindByIDForUser", mock.Anything, id, stranger).Return(nil, nil)

	_, err := svc.Update(context.Background(), stranger, id, ListingInput{Title: "Mine now"})
	assert.ErrorIs(t, err, apperror.ErrListingNotFound)
	deps.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingService_Update_RenewsExpiry(t *testing.T) {
	svc, deps := newTestListingService()
	owner := fixtures.User()
	listing := fixtures.Listing(owner, fixtures.Category())

	deps.listings.On("FindByIDForUser", mock.Anything, listing.ID, owner.ID).Return(&listing, nil)
	deps.listings.On("Update", mock.Anything, listing.ID, mock.MatchedBy(func(p repository.ListingPatch) bool {
		return p.ClearPrice && p.ClearVideo && p.CategoryID == nil && *p.Title == "Sold as is" && *p.Status == listing.Status
	})).Return(nil)

	updated, err := svc.Update(context.Background(), owner.ID, listing.ID, ListingInput{
		Title:       "Sold as is",
		Description: "No box",
		CategoryID:  listing.CategoryID,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Price)
	assert.Equal(t, "", updated.DisplayPrice)
	assert.Equal(t, testNow+DefaultListingTTL.Milliseconds(), updated.ExpiresAt)
	assert.Equal(t, listing.Category, updated.Category)
	deps.categories.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestListingService_AdminUpdate_StatusOnlyKeepsPrice(t *testing.T) {
	svc, deps := newTestListingService()
	listing := fixtures.Listing(fixtures.User(), fixtures.Category(), func(l *models.Listing) {
		l.Price = ptr(int64(1250))
		l.DisplayPrice = "$1,250"
	})

	deps.listings.On("Find", mock.Anything, listing.ID).Return(&listing, nil)
	deps.listings.On("Update", mock.Anything, listing.ID, repository.ListingPatch{
		Status:    ptr(models.ListingStatusSold),
		UpdatedAt: ptr(testNow),
	}).Return(nil)

	updated, err := svc.AdminUpdate(context.Background(), AdminListingUpdate{
		ID:     listing.ID,
		Status: ptr(models.ListingStatusSold),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusSold, updated.Status)
	assert.Equal(t, int64(1250), *updated.Price)
	assert.Equal(t, "$1,250", updated.DisplayPrice)
	assert.Equal(t, listing.Title, updated.Title)
	deps.listings.AssertExpectations(t)
}

func TestListingService_AdminUpdate_NoChanges(t *testing.T) {
	svc, deps := newTestListingService()
	listing := fixtures.Listing(fixtures.User(), fixtures.Category())

	deps.listings.On("Find", mock.Anything, listing.ID).Return(&listing, nil)

	updated, err := svc.AdminUpdate(context.Background(), AdminListingUpdate{
		ID:     listing.ID,
		Title:  ptr(listing.Title),
		Status: ptr(listing.Status),
	})
	require.NoError(t, err)
	assert.Equal(t, listing, updated)
	deps.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingService_AdminUpdate_TitleCarriesDescription(t *testing.T) {
	svc, deps := newTestListingService()
	listing := fixtures.Listing(fixtures.User(), fixtures.Category())

	deps.listings.On("Find", mock.Anything, listing.ID).Return(&listing, nil)
	deps.listings.On("Update", mock.Anything, listing.ID, repository.ListingPatch{
		Title:       ptr("New title"),
		Description: ptr(listing.Description),
		UpdatedAt:   ptr(testNow),
	}).Return(nil)

	_, err := svc.AdminUpdate(context.Background(), AdminListingUpdate{ID: listing.ID, Title: ptr("New title")})
	require.NoError(t, err)
	deps.listings.AssertExpectations(t)
}

func TestListingService_AdminUpdate_InvalidStatus(t *testing.T) {
	svc, deps := newTestListingService()
	listing := fixtures.Listing(fixtures.User(), fixtures.Category())

	deps.listings.On("Find", mock.Anything, listing.ID).Return(&listing, nil)

	_, err := svc.AdminUpdate(context.Background(), AdminListingUpdate{ID: listing.ID, Status: ptr("archived")})
	assert.True(t, apperror.IsValidation(err))
}

func TestListingService_Delete_OwnerScoped(t *testing.T) {
	svc, deps := newTestListingService()
	owner := fixtures.User()
	listing := fixtures.Listing(owner, fixtures.Category())

	deps.listings.On("FindByIDForUser", mock.Anything, listing.ID, owner.ID).Return(&listing, nil)
	deps.listings.On("Delete", mock.Anything, listing.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, listing.ID))
	deps.listings.AssertExpectations(t)
}

func TestListingService_Search_Defaults(t *testing.T) {
	svc, deps := newTestListingService()

	expected := repository.ListingSearch{Page: 1, PageSize: 25, Order: models.ListingOrderUpdatedAtAsc}
	deps.listings.On("Search", mock.Anything, expected).Return(common.Page[models.Listing]{Results: []models.Listing{}}, nil)

	page, err := svc.Search(context.Background(), ListingSearchInput{})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	deps.listings.AssertExpectations(t)
}

func TestListingService_Search_NearZip(t *testing.T) {
	svc, deps := newTestListingService()
	loc := &models.GeoLocation{Longitude: -116.2, Latitude: 43.6, City: "Boise", State: "ID", Zip: "83702"}

	deps.geocoder.On("LookupZip", mock.Anything, "83702").Return(loc, nil)
	deps.listings.On("Search", mock.Anything, mock.MatchedBy(func(s repository.ListingSearch) bool {
		return s.Near != nil && s.Near.Point == loc.Point() && s.Near.Proximity == 40000
	})).Return(common.Page[models.Listing]{}, nil)

	_, err := svc.Search(context.Background(), ListingSearchInput{Near: &NearZip{Zip: "83702", Proximity: 40000}})
	require.NoError(t, err)
	deps.listings.AssertExpectations(t)
}

func TestListingService_Search_UnknownZip(t *testing.T) {
	svc, deps := newTestListingService()
	deps.geocoder.On("LookupZip", mock.Anything, "00000").Return(nil, nil)

	_, err := svc.Search(context.Background(), ListingSearchInput{Near: &NearZip{Zip: "00000", Proximity: 1000}})
	assert.ErrorIs(t, err, apperror.ErrZipNotFound)
}

func TestListingService_Search_StoreFailure(t *testing.T) {
	svc, deps := newTestListingService()
	deps.listings.On("Search", mock.Anything, mock.Anything).
		Return(common.Page[models.Listing]{}, &common.PersistenceError{Op: "find", Collection: "listings", Err: errors.New("timeout")})

	_, err := svc.Search(context.Background(), ListingSearchInput{})
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(err))
}
