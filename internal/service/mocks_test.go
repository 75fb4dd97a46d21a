package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Add(ctx context.Context, category models.Category) (models.Category, error) {
	args := m.Called(ctx, category)
	return category, args.Error(0)
}

func (m *mockCategoryRepo) Find(ctx context.Context, id models.TaggedID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, id models.TaggedID, patch repository.CategoryPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

type mockListingRepo struct {
	mock.Mock
}

func (m *mockListingRepo) Add(ctx context.Context, listing models.Listing) (models.Listing, error) {
	args := m.Called(ctx, listing)
	return listing, args.Error(0)
}

func (m *mockListingRepo) Find(ctx context.Context, id models.TaggedID) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *mockListingRepo) FindBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *mockListingRepo) FindByIDForUser(ctx context.Context, id, userID models.TaggedID) (*models.Listing, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *mockListingRepo) Search(ctx context.Context, s repository.ListingSearch) (common.Page[models.Listing], error) {
	args := m.Called(ctx, s)
	return args.Get(0).(common.Page[models.Listing]), args.Error(1)
}

func (m *mockListingRepo) Update(ctx context.Context, id models.TaggedID, patch repository.ListingPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *mockListingRepo) Delete(ctx context.Context, id models.TaggedID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Add(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return user, args.Error(0)
}

func (m *mockUserRepo) Find(ctx context.Context, id models.TaggedID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Search(ctx context.Context, s repository.UserSearch) (common.Page[models.User], error) {
	args := m.Called(ctx, s)
	return args.Get(0).(common.Page[models.User]), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id models.TaggedID, patch repository.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

type mockSponsorRepo struct {
	mock.Mock
}

func (m *mockSponsorRepo) Add(ctx context.Context, sponsor models.Sponsor) (models.Sponsor, error) {
	args := m.Called(ctx, sponsor)
	return sponsor, args.Error(0)
}

func (m *mockSponsorRepo) Find(ctx context.Context, id models.TaggedID) (*models.Sponsor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sponsor), args.Error(1)
}

func (m *mockSponsorRepo) List(ctx context.Context) ([]models.Sponsor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Sponsor), args.Error(1)
}

func (m *mockSponsorRepo) Update(ctx context.Context, id models.TaggedID, patch repository.SponsorPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *mockSponsorRepo) Delete(ctx context.Context, id models.TaggedID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) Update(ctx context.Context, id models.TaggedID, campaigns []models.SponsorCampaign) error {
	args := m.Called(ctx, id, campaigns)
	return args.Error(0)
}

// mockReportRepo хранит записи в памяти, чтобы проверять последовательность Submit/Dismiss.
type mockReportRepo struct {
	mock.Mock
	reports map[models.TaggedID]*models.ListingReport
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{reports: map[models.TaggedID]*models.ListingReport{}}
}

func (m *mockReportRepo) Add(ctx context.Context, report models.ListingReport) (models.ListingReport, error) {
	args := m.Called(ctx, report)
	if args.Error(0) == nil {
		r := report
		m.reports[r.ID] = &r
	}
	return report, args.Error(0)
}

func (m *mockReportRepo) Find(ctx context.Context, id models.TaggedID) (*models.ListingReport, error) {
	m.Called(ctx, id)
	if r, ok := m.reports[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *mockReportRepo) FindForListing(ctx context.Context, listingID models.TaggedID) (*models.ListingReport, error) {
	m.Called(ctx, listingID)
	for _, r := range m.reports {
		if r.ListingID == listingID && r.Status == models.ReportStatusPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockReportRepo) List(ctx context.Context) ([]models.ListingReport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ListingReport), args.Error(1)
}

func (m *mockReportRepo) AppendEvent(ctx context.Context, id models.TaggedID, event models.ListingReportEvent) error {
	args := m.Called(ctx, id, event)
	if r, ok := m.reports[id]; ok && args.Error(0) == nil {
		r.Reports = append(r.Reports, event)
	}
	return args.Error(0)
}

func (m *mockReportRepo) Update(ctx context.Context, id models.TaggedID, patch repository.ReportPatch) error {
	args := m.Called(ctx, id, patch)
	if r, ok := m.reports[id]; ok && args.Error(0) == nil && patch.Status != nil {
		r.Status = *patch.Status
	}
	return args.Error(0)
}

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) LookupZip(ctx context.Context, zip string) (*models.GeoLocation, error) {
	args := m.Called(ctx, zip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeoLocation), args.Error(1)
}

func fixedClock(ms int64) func() int64 {
	return func() int64 { return ms }
}
