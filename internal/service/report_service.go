package service

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

type ReportRepository interface {
	Add(ctx context.Context, report models.ListingReport) (models.ListingReport, error)
	Find(ctx context.Context, id models.TaggedID) (*models.ListingReport, error)
	FindForListing(ctx context.Context, listingID models.TaggedID) (*models.ListingReport, error)
	List(ctx context.Context) ([]models.ListingReport, error)
	AppendEvent(ctx context.Context, id models.TaggedID, event models.ListingReportEvent) error
	Update(ctx context.Context, id models.TaggedID, patch repository.ReportPatch) error
}

type ListingFinder interface {
	Find(ctx context.Context, id models.TaggedID) (*models.Listing, error)
}

// ReportService принимает жалобы на объявления.
// Жалобы на одно объявление копятся в одной записи, пока её не отклонят.
type ReportService struct {
	reports  ReportRepository
	listings ListingFinder
	now      func() int64
}

func NewReportService(reports ReportRepository, listings ListingFinder) *ReportService {
	return &ReportService{reports: reports, listings: listings, now: models.Now}
}

// Submit регистрирует жалобу. reporter == nil для анонимной жалобы.
func (s *ReportService) Submit(ctx context.Context, listingID models.TaggedID, message string, reporter *models.UserRef) (models.ListingReport, error) {
	listing, err := s.listings.Find(ctx, listingID)
	if err != nil {
		return models.ListingReport{}, storeError(err, "report service: find listing", logrus.Fields{"listing_id": listingID})
	}
	if listing == nil {
		return models.ListingReport{}, apperror.ErrListingNotFound
	}

	now := s.now()
	event := models.ListingReportEvent{
		Anonymous: reporter == nil,
		User:      reporter,
		Timestamp: now,
		Snapshot:  *listing,
		Message:   message,
	}

	open, err := s.reports.FindForListing(ctx, listingID)
	if err != nil {
		return models.ListingReport{}, storeError(err, "report service: find open report", logrus.Fields{"listing_id": listingID})
	}
	if open != nil {
		if err := s.reports.AppendEvent(ctx, open.ID, event); err != nil {
			return models.ListingReport{}, storeError(err, "report service: append event", logrus.Fields{"report_id": open.ID})
		}
		report := *open
		report.Reports = append(slices.Clone(open.Reports), event)
		report.UpdatedAt = now
		return report, nil
	}

	report := models.ListingReport{
		ID:        models.NewID(models.ModelReport),
		ListingID: listing.ID,
		Status:    models.ReportStatusPending,
		Reports:   []models.ListingReportEvent{event},
		ExpiresAt: listing.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.reports.Add(ctx, report); err != nil {
		return models.ListingReport{}, storeError(err, "report service: add", logrus.Fields{"listing_id": listingID})
	}
	return report, nil
}

// Dismiss закрывает запись жалоб. Следующая жалоба на объявление создаст новую запись.
func (s *ReportService) Dismiss(ctx context.Context, id models.TaggedID, by models.UserRef) (models.ListingReport, error) {
	report, err := s.reports.Find(ctx, id)
	if err != nil {
		return models.ListingReport{}, storeError(err, "report service: find", logrus.Fields{"report_id": id})
	}
	if report == nil {
		return models.ListingReport{}, apperror.ErrReportNotFound
	}
	if !report.Open() {
		return models.ListingReport{}, apperror.ErrReportDismissed
	}

	now := s.now()
	status := models.ReportStatusDismissed
	patch := repository.ReportPatch{
		Status:      &status,
		DismissedAt: &now,
		DismissedBy: &by,
		UpdatedAt:   &now,
	}
	if err := s.reports.Update(ctx, id, patch); err != nil {
		return models.ListingReport{}, storeError(err, "report service: dismiss", logrus.Fields{"report_id": id})
	}

	dismissed := *report
	dismissed.Status = status
	dismissed.DismissedAt = &now
	dismissed.DismissedBy = &by
	dismissed.UpdatedAt = now
	return dismissed, nil
}

// List возвращает записи, срок хранения которых не истёк.
func (s *ReportService) List(ctx context.Context) ([]models.ListingReport, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, storeError(err, "report service: list", nil)
	}
	return reports, nil
}
