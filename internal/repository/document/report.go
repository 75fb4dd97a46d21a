package document

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// ListingReportDocument документ коллекции reports.
type ListingReportDocument struct {
	Key         primitive.ObjectID `bson:"_id"`
	ListingKey  primitive.ObjectID `bson:"_listingId"`
	ID          models.TaggedID    `bson:"id"`
	ListingID   models.TaggedID    `bson:"listingId"`
	Status      string             `bson:"status"`
	Reports     []ReportEventDoc   `bson:"reports"`
	DismissedAt *int64             `bson:"dismissedAt"`
	DismissedBy *UserRefDoc        `bson:"dismissedBy"`
	ExpiresAt   int64              `bson:"expiresAt"`
	CreatedAt   int64              `bson:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt"`
}

// ReportEventDoc одна жалоба со снимком объявления.
type ReportEventDoc struct {
	Anonymous bool          `bson:"anonymous"`
	User      *UserRefDoc   `bson:"user"`
	Timestamp int64         `bson:"timestamp"`
	Snapshot  ListingFields `bson:"snapshot"`
	Message   string        `bson:"message"`
}

func ReportEventFrom(e models.ListingReportEvent) ReportEventDoc {
	return ReportEventDoc{
		Anonymous: e.Anonymous,
		User:      UserRefPtrFrom(e.User),
		Timestamp: e.Timestamp,
		Snapshot:  ListingFieldsFrom(e.Snapshot),
		Message:   e.Message,
	}
}

func (d ReportEventDoc) ToModel() models.ListingReportEvent {
	return models.ListingReportEvent{
		Anonymous: d.Anonymous,
		User:      userRefPtrToModel(d.User),
		Timestamp: d.Timestamp,
		Snapshot:  d.Snapshot.ToModel(),
		Message:   d.Message,
	}
}

// ListingReportFromModel строит документ жалобы, _listingId берётся из ListingID.
func ListingReportFromModel(r models.ListingReport) (ListingReportDocument, error) {
	k, err := key(r.ID)
	if err != nil {
		return ListingReportDocument{}, err
	}
	listingKey, err := key(r.ListingID)
	if err != nil {
		return ListingReportDocument{}, err
	}
	var events []ReportEventDoc
	if r.Reports != nil {
		events = make([]ReportEventDoc, len(r.Reports))
		for i, e := range r.Reports {
			events[i] = ReportEventFrom(e)
		}
	}
	return ListingReportDocument{
		Key:         k,
		ListingKey:  listingKey,
		ID:          r.ID,
		ListingID:   r.ListingID,
		Status:      r.Status,
		Reports:     events,
		DismissedAt: clonePtr(r.DismissedAt),
		DismissedBy: UserRefPtrFrom(r.DismissedBy),
		ExpiresAt:   r.ExpiresAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func (d ListingReportDocument) ToModel() models.ListingReport {
	var events []models.ListingReportEvent
	if d.Reports != nil {
		events = make([]models.ListingReportEvent, len(d.Reports))
		for i, e := range d.Reports {
			events[i] = e.ToModel()
		}
	}
	return models.ListingReport{
		ID:          d.ID,
		ListingID:   d.ListingID,
		Status:      d.Status,
		Reports:     events,
		DismissedAt: clonePtr(d.DismissedAt),
		DismissedBy: userRefPtrToModel(d.DismissedBy),
		ExpiresAt:   d.ExpiresAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
