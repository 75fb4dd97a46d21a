package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
	"github.com/ignatzorin/marketplace-backend/internal/repository/document"
)

// ReportPatch изменяемые поля записи жалоб.
type ReportPatch struct {
	Status      *string
	DismissedAt *int64
	DismissedBy *models.UserRef
	UpdatedAt   *int64
}

type reportUpdate struct {
	id    models.TaggedID
	patch ReportPatch
}

type reportEvent struct {
	id    models.TaggedID
	event models.ListingReportEvent
}

// ReportRepository отвечает за коллекцию reports.
type ReportRepository struct {
	add        func(context.Context, models.ListingReport) (models.ListingReport, error)
	find       func(context.Context, models.TaggedID) (*models.ListingReport, error)
	forListing func(context.Context, models.TaggedID) (*models.ListingReport, error)
	list       func(context.Context) ([]models.ListingReport, error)
	update     func(context.Context, reportUpdate) error
	push       func(context.Context, reportEvent) error
}

// NewReportRepository создаёт экземпляр репозитория.
func NewReportRepository(db *mongo.Database) *ReportRepository {
	return newReportRepository(db, models.Now)
}

func newReportRepository(db *mongo.Database, now func() int64) *ReportRepository {
	return &ReportRepository{
		add: common.AddItem(db, common.AddConfig[models.ListingReport, document.ListingReportDocument]{
			Collection: ReportsCollection,
			ToDocument: document.ListingReportFromModel,
		}),
		find: common.FindItem(db, common.FindConfig[models.TaggedID, document.ListingReportDocument, models.ListingReport]{
			Collection: ReportsCollection,
			ToFilter:   common.ByKey,
			ToModel:    document.ListingReportDocument.ToModel,
		}),
		forListing: common.FindItem(db, common.FindConfig[models.TaggedID, document.ListingReportDocument, models.ListingReport]{
			Collection: ReportsCollection,
			ToFilter:   openReportFilter,
			ToModel:    document.ListingReportDocument.ToModel,
		}),
		list: common.FindAll(db, common.FindAllConfig[document.ListingReportDocument, models.ListingReport]{
			Collection: ReportsCollection,
			Filter:     func() common.Filter { return common.Filter{"expiresAt": bson.M{"$gt": now()}} },
			ToModel:    document.ListingReportDocument.ToModel,
		}),
		update: common.UpdateOne(db, common.UpdateConfig[reportUpdate]{
			Collection: ReportsCollection,
			ToFilter:   func(u reportUpdate) (common.Filter, error) { return common.ByKey(u.id) },
			ToUpdate:   func(u reportUpdate) (common.Update, error) { return u.patch.toUpdate(), nil },
		}),
		push: common.UpdateOne(db, common.UpdateConfig[reportEvent]{
			Collection: ReportsCollection,
			ToFilter:   func(e reportEvent) (common.Filter, error) { return common.ByKey(e.id) },
			ToUpdate: func(e reportEvent) (common.Update, error) {
				return common.Update{
					"$push": bson.M{"reports": document.ReportEventFrom(e.event)},
					"$set":  bson.M{"updatedAt": now()},
				}, nil
			},
		}),
	}
}

// Add сохраняет новую запись жалоб.
func (r *ReportRepository) Add(ctx context.Context, report models.ListingReport) (models.ListingReport, error) {
	return r.add(ctx, report)
}

// Find возвращает запись по идентификатору или nil.
func (r *ReportRepository) Find(ctx context.Context, id models.TaggedID) (*models.ListingReport, error) {
	return r.find(ctx, id)
}

// FindForListing возвращает открытую (pending) запись жалоб на объявление или nil.
func (r *ReportRepository) FindForListing(ctx context.Context, listingID models.TaggedID) (*models.ListingReport, error) {
	return r.forListing(ctx, listingID)
}

// List возвращает записи, у которых не истёк срок хранения.
func (r *ReportRepository) List(ctx context.Context) ([]models.ListingReport, error) {
	return r.list(ctx)
}

// AppendEvent добавляет жалобу в конец существующей записи.
func (r *ReportRepository) AppendEvent(ctx context.Context, id models.TaggedID, event models.ListingReportEvent) error {
	return r.push(ctx, reportEvent{id: id, event: event})
}

// Update применяет частичное обновление.
func (r *ReportRepository) Update(ctx context.Context, id models.TaggedID, patch ReportPatch) error {
	return r.update(ctx, reportUpdate{id: id, patch: patch})
}

func openReportFilter(listingID models.TaggedID) (common.Filter, error) {
	key, err := common.StorageKey(listingID)
	if err != nil {
		return nil, err
	}
	return common.Filter{"_listingId": key, "status": models.ReportStatusPending}, nil
}

func (p ReportPatch) toUpdate() common.Update {
	set := bson.M{}
	setIf(set, "status", p.Status)
	setIf(set, "dismissedAt", p.DismissedAt)
	setIf(set, "updatedAt", p.UpdatedAt)
	if p.DismissedBy != nil {
		set["dismissedBy"] = document.UserRefFrom(*p.DismissedBy)
	}
	return withSet(set)
}
