package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/marketplace-backend/internal/fixtures"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

type sponsorDeps struct {
	sponsors   *mockSponsorRepo
	campaigns  *mockCampaignRepo
	categories *mockCategoryRepo
}

func newTestSponsorService() (*SponsorService, sponsorDeps) {
	deps := sponsorDeps{
		sponsors:   new(mockSponsorRepo),
		campaigns:  new(mockCampaignRepo),
		categories: new(mockCategoryRepo),
	}
	svc := NewSponsorService(deps.sponsors, deps.campaigns, deps.categories)
	svc.now = fixedClock(testNow)
	return svc, deps
}

func TestSponsorService_Add(t *testing.T) {
	svc, deps := newTestSponsorService()
	deps.sponsors.On("Add", mock.Anything, mock.Anything).Return(nil)

	sponsor, err := svc.Add(context.Background(), "Acme Arms")
	require.NoError(t, err)
	assert.Equal(t, models.SponsorStatusDisabled, sponsor.Status)
	assert.Equal(t, models.SponsorTierTrial, sponsor.Tier)
	assert.NotNil(t, sponsor.Categories)
	assert.NotNil(t, sponsor.Campaigns)
	assert.False(t, sponsor.Deleted)
}

func TestSponsorService_Update_ResolvesCategories(t *testing.T) {
	svc, deps := newTestSponsorService()
	sponsor := fixtures.Sponsor()
	rifles, optics, ammo := fixtures.Category(), fixtures.Category(), fixtures.Category()

	deps.sponsors.On("Find", mock.Anything, sponsor.ID).Return(&sponsor, nil)
	deps.categories.On("List", mock.Anything).Return([]models.Category{rifles, optics, ammo}, nil)
	deps.sponsors.On("Update", mock.Anything, sponsor.ID, repository.SponsorPatch{
		Tier:       ptr(models.SponsorTierPartner),
		Categories: &[]models.Category{rifles, ammo},
		UpdatedAt:  ptr(testNow),
	}).Return(nil)

	updated, err := svc.Update(context.Background(), SponsorUpdate{
		ID:          sponsor.ID,
		Tier:        ptr(models.SponsorTierPartner),
		CategoryIDs: &[]models.TaggedID{ammo.ID, rifles.ID, models.NewID(models.ModelCategory)},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.Category{rifles, ammo}, updated.Categories)
	assert.Equal(t, models.SponsorTierPartner, updated.Tier)
	deps.sponsors.AssertExpectations(t)
}

func TestSponsorService_Update_InvalidTier(t *testing.T) {
	svc, deps := newTestSponsorService()
	sponsor := fixtures.Sponsor()
	deps.sponsors.On("Find", mock.Anything, sponsor.ID).Return(&sponsor, nil)

	_, err := svc.Update(context.Background(), SponsorUpdate{ID: sponsor.ID, Tier: ptr("platinum")})
	assert.True(t, apperror.IsValidation(err))
	deps.sponsors.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSponsorService_Delete_Soft(t *testing.T) {
	svc, deps := newTestSponsorService()
	sponsor := fixtures.Sponsor()

	deps.sponsors.On("Find", mock.Anything, sponsor.ID).Return(&sponsor, nil)
	deps.sponsors.On("Delete", mock.Anything, sponsor.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), sponsor.ID))
	deps.sponsors.AssertExpectations(t)
}

func TestSponsorService_Delete_Missing(t *testing.T) {
	svc, deps := newTestSponsorService()
	id := models.NewID(models.ModelSponsor)
	deps.sponsors.On("Find", mock.Anything, id).Return(nil, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), apperror.ErrSponsorNotFound)
}

func TestSponsorService_AddCampaign(t *testing.T) {
	svc, deps := newTestSponsorService()
	existing := fixtures.Campaign()
	sponsor := fixtures.Sponsor(func(s *models.Sponsor) { s.Campaigns = []models.SponsorCampaign{existing} })

	deps.sponsors.On("Find", mock.Anything, sponsor.ID).Return(&sponsor, nil)
	deps.campaigns.On("Update", mock.Anything, sponsor.ID, mock.MatchedBy(func(c []models.SponsorCampaign) bool {
		return len(c) == 2 && c[0].Key == existing.Key && c[1].Key == "spring-sale"
	})).Return(nil)

	updated, err := svc.AddCampaign(context.Background(), sponsor.ID, CampaignInput{Name: "Spring Sale", URL: ptr("https://acme.example")})
	require.NoError(t, err)
	require.Len(t, updated.Campaigns, 2)
	assert.Equal(t, "spring-sale", updated.Campaigns[1].Key)
	assert.Equal(t, testNow, updated.Campaigns[1].CreatedAt)
	assert.Len(t, sponsor.Campaigns, 1)
}

func TestSponsorService_AddCampaign_KeyTaken(t *testing.T) {
	svc, deps := newTestSponsorService()
	campaign := fixtures.Campaign(func(c *models.SponsorCampaign) {
		c.Name = "Spring Sale"
		c.Key = "spring-sale"
	})
	sponsor := fixtures.Sponsor(func(s *models.Sponsor) { s.Campaigns = []models.SponsorCampaign{campaign} })

	deps.sponsors.On("Find", mock.Anything, sponsor.ID).Return(&sponsor, nil)

	_, err := svc.AddCampaign(context.Background(), sponsor.ID, CampaignInput{Name: "spring  sale"})
	assert.ErrorIs(t, err, apperror.ErrCampaignKeyTaken)
	deps.campaigns.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSponsorService_UpdateCampaign_KeepsOrder(t *testing.T) {
	svc, deps := newTestSponsorService()
	first := fixtures.Campaign(func(c *models.SponsorCampaign) { c.Key = "first" })
	second := fixtures.Campaign(func(c *models.SponsorCampaign) { c.Key = "second" })
	third := fixtures.Campaign(func(c *models.SponsorCampaign) { c.Key = "third" })
	sponsor := fixtures.Sponsor(func(s *models.Sponsor) {
		s.Campaigns = []models.SponsorCampaign{first, second, third}
	})

	deps.sponsors.On("Find", mock.Anything, sponsor.ID).Return(&sponsor, nil)
	deps.campaigns.On("Update", mock.Anything, sponsor.ID, mock.Anything).Return(nil)

	updated, err := svc.UpdateCampaign(context.Background(), sponsor.ID, "second", CampaignUpdate{Title: ptr("Half off")})
	require.NoError(t, err)
	require.Len(t, updated.Campaigns, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{updated.Campaigns[0].Key, updated.Campaigns[1].Key, updated.Campaigns[2].Key})
	assert.Equal(t, "Half off", *updated.Campaigns[1].Title)
	assert.Equal(t, second.Name, updated.Campaigns[1].Name)
	assert.Equal(t, testNow, updated.Campaigns[1].UpdatedAt)
	assert.Equal(t, first, updated.Campaigns[0])
}

func TestSponsorService_RemoveCampaign(t *testing.T) {
	svc, deps := newTestSponsorService()
	keep := fixtures.Campaign(func(c *models.SponsorCampaign) { c.Key = "keep" })
	drop := fixtures.Campaign(func(c *models.SponsorCampaign) { c.Key = "drop" })
	sponsor := fixtures.Sponsor(func(s *models.Sponsor) { s.Campaigns = []models.SponsorCampaign{keep, drop} })

	deps.sponsors.On("Find", mock.Anything, sponsor.ID).Return(&sponsor, nil)
	deps.campaigns.On("Update", mock.Anything, sponsor.ID, []models.SponsorCampaign{keep}).Return(nil)

	updated, err := svc.RemoveCampaign(context.Background(), sponsor.ID, "drop")
	require.NoError(t, err)
	assert.Equal(t, []models.SponsorCampaign{keep}, updated.Campaigns)

	_, err = svc.RemoveCampaign(context.Background(), sponsor.ID, "missing")
	assert.ErrorIs(t, err, apperror.ErrCampaignNotFound)
}
