package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
	"github.com/ignatzorin/marketplace-backend/internal/repository/document"
)

// SponsorPatch изменяемые поля спонсора.
type SponsorPatch struct {
	Status     *string
	Name       *string
	Tier       *string
	Categories *[]models.Category
	UpdatedAt  *int64
}

type sponsorUpdate struct {
	id    models.TaggedID
	patch SponsorPatch
}

type campaignsUpdate struct {
	id        models.TaggedID
	campaigns []models.SponsorCampaign
}

// SponsorRepository отвечает за коллекцию sponsors.
// Удаление мягкое: документ помечается deleted и пропадает из List.
type SponsorRepository struct {
	Campaigns *SponsorCampaignRepository

	add    func(context.Context, models.Sponsor) (models.Sponsor, error)
	find   func(context.Context, models.TaggedID) (*models.Sponsor, error)
	list   func(context.Context) ([]models.Sponsor, error)
	update func(context.Context, sponsorUpdate) error
	remove func(context.Context, models.TaggedID) error
}

// SponsorCampaignRepository обновляет кампании внутри документа спонсора.
type SponsorCampaignRepository struct {
	update func(context.Context, campaignsUpdate) error
}

// NewSponsorRepository создаёт экземпляр репозитория.
func NewSponsorRepository(db *mongo.Database) *SponsorRepository {
	return newSponsorRepository(db, models.Now)
}

func newSponsorRepository(db *mongo.Database, now func() int64) *SponsorRepository {
	byID := func(u sponsorUpdate) (common.Filter, error) { return common.ByKey(u.id) }
	return &SponsorRepository{
		Campaigns: &SponsorCampaignRepository{
			update: common.UpdateOne(db, common.UpdateConfig[campaignsUpdate]{
				Collection: SponsorsCollection,
				ToFilter:   func(u campaignsUpdate) (common.Filter, error) { return common.ByKey(u.id) },
				ToUpdate: func(u campaignsUpdate) (common.Update, error) {
					campaigns := document.CampaignsFrom(u.campaigns)
					if campaigns == nil {
						campaigns = []document.CampaignDoc{}
					}
					return common.Update{"$set": bson.M{"campaigns": campaigns}}, nil
				},
			}),
		},
		add: common.AddItem(db, common.AddConfig[models.Sponsor, document.SponsorDocument]{
			Collection: SponsorsCollection,
			ToDocument: document.SponsorFromModel,
		}),
		find: common.FindItem(db, common.FindConfig[models.TaggedID, document.SponsorDocument, models.Sponsor]{
			Collection: SponsorsCollection,
			ToFilter:   common.ByKey,
			ToModel:    document.SponsorDocument.ToModel,
		}),
		list: common.FindAll(db, common.FindAllConfig[document.SponsorDocument, models.Sponsor]{
			Collection: SponsorsCollection,
			Filter:     func() common.Filter { return common.Filter{"deleted": bson.M{"$ne": true}} },
			ToModel:    document.SponsorDocument.ToModel,
		}),
		update: common.UpdateOne(db, common.UpdateConfig[sponsorUpdate]{
			Collection: SponsorsCollection,
			ToFilter:   byID,
			ToUpdate:   func(u sponsorUpdate) (common.Update, error) { return u.patch.toUpdate(), nil },
		}),
		remove: common.UpdateOne(db, common.UpdateConfig[models.TaggedID]{
			Collection: SponsorsCollection,
			ToFilter:   common.ByKey,
			ToUpdate: func(models.TaggedID) (common.Update, error) {
				return common.Update{"$set": bson.M{"deleted": true, "deletedAt": now()}}, nil
			},
		}),
	}
}

// Add сохраняет нового спонсора.
func (r *SponsorRepository) Add(ctx context.Context, sponsor models.Sponsor) (models.Sponsor, error) {
	return r.add(ctx, sponsor)
}

// Find возвращает спонсора по идентификатору, включая удалённых.
func (r *SponsorRepository) Find(ctx context.Context, id models.TaggedID) (*models.Sponsor, error) {
	return r.find(ctx, id)
}

// List возвращает всех неудалённых спонсоров.
func (r *SponsorRepository) List(ctx context.Context) ([]models.Sponsor, error) {
	return r.list(ctx)
}

// Update применяет частичное обновление.
func (r *SponsorRepository) Update(ctx context.Context, id models.TaggedID, patch SponsorPatch) error {
	return r.update(ctx, sponsorUpdate{id: id, patch: patch})
}

// Delete помечает спонсора удалённым.
func (r *SponsorRepository) Delete(ctx context.Context, id models.TaggedID) error {
	return r.remove(ctx, id)
}

// Update заменяет список кампаний целиком.
func (r *SponsorCampaignRepository) Update(ctx context.Context, id models.TaggedID, campaigns []models.SponsorCampaign) error {
	return r.update(ctx, campaignsUpdate{id: id, campaigns: campaigns})
}

func (p SponsorPatch) toUpdate() common.Update {
	set := bson.M{}
	setIf(set, "status", p.Status)
	setIf(set, "name", p.Name)
	setIf(set, "tier", p.Tier)
	setIf(set, "updatedAt", p.UpdatedAt)
	if p.Categories != nil {
		categories := document.CategoriesFrom(*p.Categories)
		if categories == nil {
			categories = []document.CategoryFields{}
		}
		set["categories"] = categories
	}
	return withSet(set)
}
