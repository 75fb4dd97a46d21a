package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/fixtures"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
	"github.com/ignatzorin/marketplace-backend/internal/repository/document"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func int64Ptr(v int64) *int64 { return &v }

func setOf(t *testing.T, u common.Update) bson.M {
	t.Helper()
	set, ok := u["$set"].(bson.M)
	require.True(t, ok, "ожидали $set в %v", u)
	return set
}

func TestUserSearchFilter(t *testing.T) {
	f, err := userSearchFilter(UserSearch{})
	require.NoError(t, err)
	assert.Empty(t, f)

	f, err = userSearchFilter(UserSearch{Disabled: boolPtr(false), Name: "o'neil"})
	require.NoError(t, err)
	assert.Equal(t, false, f["disabled"])
	assert.Equal(t, primitive.Regex{Pattern: "o'neil", Options: "i"}, f["fullName"])
}

func TestUserSearchOptions(t *testing.T) {
	o := userSearchOptions(UserSearch{Page: 3, PageSize: 20, Order: models.UserOrderLoggedInDesc})
	assert.Equal(t, int64(40), o.Skip)
	assert.Equal(t, int64(20), o.Limit)
	assert.Equal(t, bson.D{{Key: "lastLoggedInAt", Value: -1}}, o.Sort)

	o = userSearchOptions(UserSearch{Page: 1, PageSize: 20, Order: models.UserOrderCreatedAtAsc})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, o.Sort)
}

func TestUserPatch_ToUpdate(t *testing.T) {
	assert.Empty(t, UserPatch{}.toUpdate())

	set := setOf(t, UserPatch{
		FullName:           strPtr("Ada Lovelace"),
		ClearPhone:         true,
		Phone:              strPtr("ignored"),
		ClearPasswordReset: true,
		PasswordHash:       strPtr("hash"),
		UpdatedAt:          int64Ptr(7),
	}.toUpdate())

	assert.Equal(t, "Ada Lovelace", set["fullName"])
	assert.Nil(t, set["phone"])
	assert.Contains(t, set, "phone")
	assert.Contains(t, set, "_passwordReset")
	assert.Nil(t, set["_passwordReset"])
	assert.Equal(t, "hash", set["_passwordHash"])
	assert.Equal(t, int64(7), set["updatedAt"])
	assert.NotContains(t, set, "email")
}

func TestListingSearchFilter(t *testing.T) {
	poster := models.NewID(models.ModelUser)
	category := models.NewID(models.ModelCategory)
	near := &GeoNear{Point: models.GeoPoint{Longitude: -111.9, Latitude: 40.7}, Proximity: 16000}

	f, err := listingSearchFilter(ListingSearch{
		PosterID:   poster,
		CategoryID: category,
		Keywords:   "ruger 10/22",
		Near:       near,
	})
	require.NoError(t, err)

	posterKey, _ := common.StorageKey(poster)
	categoryKey, _ := common.StorageKey(category)
	assert.Equal(t, posterKey, f["_userId"])
	assert.Equal(t, categoryKey, f["_categoryId"])
	assert.Equal(t, primitive.Regex{Pattern: "ruger|10/22", Options: "i"}, f["_text"])

	geo := f["_location"].(bson.M)["$near"].(bson.M)
	assert.Equal(t, document.GeoJSONPoint{Type: "Point", Coordinates: []float64{-111.9, 40.7}}, geo["$geometry"])
	assert.Equal(t, 16000.0, geo["$maxDistance"])
}

func TestListingCountFilter_ReplacesNear(t *testing.T) {
	near := &GeoNear{Point: models.GeoPoint{Longitude: -111.9, Latitude: 40.7}, Proximity: earthRadiusMeters / 2}

	f, err := listingCountFilter(ListingSearch{Near: near})
	require.NoError(t, err)

	within := f["_location"].(bson.M)["$geoWithin"].(bson.M)
	assert.Equal(t, bson.A{bson.A{-111.9, 40.7}, 0.5}, within["$centerSphere"])
	assert.NotContains(t, f["_location"], "$near")
}

func TestListingSearchFilter_Empty(t *testing.T) {
	f, err := listingSearchFilter(ListingSearch{Keywords: "   "})
	require.NoError(t, err)
	assert.Empty(t, f)

	_, err = listingSearchFilter(ListingSearch{PosterID: "igt.user.bad"})
	assert.ErrorIs(t, err, common.ErrInvalidID)
}

func TestListingSearchOptions(t *testing.T) {
	o := listingSearchOptions(ListingSearch{Page: 1, PageSize: 25, Order: models.ListingOrderPriceAsc})
	assert.Equal(t, int64(0), o.Skip)
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, o.Sort)

	o = listingSearchOptions(ListingSearch{Page: 2, PageSize: 25, Order: models.ListingOrderUpdatedAtDesc})
	assert.Equal(t, int64(25), o.Skip)
	assert.Equal(t, bson.D{{Key: "updatedAt", Value: -1}}, o.Sort)
}

func TestListingPatch_StatusOnlyKeepsOtherFields(t *testing.T) {
	u, err := ListingPatch{
		Status:    strPtr(models.ListingStatusSold),
		UpdatedAt: int64Ptr(10),
	}.toUpdate()
	require.NoError(t, err)

	set := setOf(t, u)
	assert.Equal(t, bson.M{"status": models.ListingStatusSold, "updatedAt": int64(10)}, set)
}

func TestListingPatch_TextRecomputed(t *testing.T) {
	u, err := ListingPatch{Title: strPtr("Canoe"), Description: strPtr("Green, 16ft")}.toUpdate()
	require.NoError(t, err)

	set := setOf(t, u)
	assert.Equal(t, "Canoe Green, 16ft", set["_text"])

	_, err = ListingPatch{Title: strPtr("Canoe")}.toUpdate()
	assert.ErrorIs(t, err, common.ErrIncompletePatch)
}

func TestListingPatch_CategoryShadow(t *testing.T) {
	category := fixtures.Category()

	u, err := ListingPatch{CategoryID: &category.ID, Category: &category}.toUpdate()
	require.NoError(t, err)

	set := setOf(t, u)
	key, _ := common.StorageKey(category.ID)
	assert.Equal(t, key, set["_categoryId"])
	assert.Equal(t, category.ID, set["categoryId"])
	assert.Equal(t, document.CategoryFieldsFrom(category), set["category"])

	other := models.NewID(models.ModelCategory)
	_, err = ListingPatch{CategoryID: &other, Category: &category}.toUpdate()
	assert.ErrorIs(t, err, common.ErrIncompletePatch)

	_, err = ListingPatch{CategoryID: &category.ID}.toUpdate()
	assert.ErrorIs(t, err, common.ErrIncompletePatch)
}

func TestListingPatch_LocationAndClears(t *testing.T) {
	loc := fixtures.Location()

	u, err := ListingPatch{Location: &loc, ClearPrice: true, ClearVideo: true}.toUpdate()
	require.NoError(t, err)

	set := setOf(t, u)
	assert.Equal(t, document.GeoPointFrom(&loc), set["_location"])
	assert.Equal(t, document.GeoLocationFrom(loc), set["location"])
	assert.Contains(t, set, "price")
	assert.Nil(t, set["price"])
	assert.Nil(t, set["video"])
}

func TestSponsorPatch_ToUpdate(t *testing.T) {
	assert.Empty(t, SponsorPatch{}.toUpdate())

	none := []models.Category{}
	set := setOf(t, SponsorPatch{Tier: strPtr(models.SponsorTierFeatured), Categories: &none}.toUpdate())
	assert.Equal(t, models.SponsorTierFeatured, set["tier"])
	assert.Equal(t, []document.CategoryFields{}, set["categories"])
}

func TestOpenReportFilter(t *testing.T) {
	listingID := models.NewID(models.ModelListing)

	f, err := openReportFilter(listingID)
	require.NoError(t, err)

	key, _ := common.StorageKey(listingID)
	assert.Equal(t, common.Filter{"_listingId": key, "status": models.ReportStatusPending}, f)
}

func TestReportPatch_ToUpdate(t *testing.T) {
	by := fixtures.User().Ref()

	set := setOf(t, ReportPatch{
		Status:      strPtr(models.ReportStatusDismissed),
		DismissedAt: int64Ptr(5),
		DismissedBy: &by,
	}.toUpdate())

	assert.Equal(t, models.ReportStatusDismissed, set["status"])
	assert.Equal(t, int64(5), set["dismissedAt"])
	assert.Equal(t, document.UserRefFrom(by), set["dismissedBy"])
}
