package document

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// SponsorDocument документ коллекции sponsors.
type SponsorDocument struct {
	Key        primitive.ObjectID `bson:"_id"`
	ID         models.TaggedID    `bson:"id"`
	Status     string             `bson:"status"`
	Name       string             `bson:"name"`
	Tier       string             `bson:"tier"`
	Categories []CategoryFields   `bson:"categories"`
	Campaigns  []CampaignDoc      `bson:"campaigns"`
	Deleted    bool               `bson:"deleted"`
	DeletedAt  *int64             `bson:"deletedAt"`
	CreatedAt  int64              `bson:"createdAt"`
	UpdatedAt  int64              `bson:"updatedAt"`
}

// CampaignDoc рекламная кампания внутри документа спонсора.
type CampaignDoc struct {
	Name      string    `bson:"name"`
	Key       string    `bson:"key"`
	Image     *AssetDoc `bson:"image"`
	Video     *VideoDoc `bson:"video"`
	Title     *string   `bson:"title"`
	Subtext   *string   `bson:"subtext"`
	CTA       *string   `bson:"cta"`
	URL       *string   `bson:"url"`
	CreatedAt int64     `bson:"createdAt"`
	UpdatedAt int64     `bson:"updatedAt"`
}

func CampaignFrom(c models.SponsorCampaign) CampaignDoc {
	return CampaignDoc{
		Name:      c.Name,
		Key:       c.Key,
		Image:     AssetFrom(c.Image),
		Video:     VideoFrom(c.Video),
		Title:     clonePtr(c.Title),
		Subtext:   clonePtr(c.Subtext),
		CTA:       clonePtr(c.CTA),
		URL:       clonePtr(c.URL),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d CampaignDoc) ToModel() models.SponsorCampaign {
	return models.SponsorCampaign{
		Name:      d.Name,
		Key:       d.Key,
		Image:     assetToModel(d.Image),
		Video:     videoToModel(d.Video),
		Title:     clonePtr(d.Title),
		Subtext:   clonePtr(d.Subtext),
		CTA:       clonePtr(d.CTA),
		URL:       clonePtr(d.URL),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// CampaignsFrom копирует список кампаний, nil остаётся nil.
func CampaignsFrom(list []models.SponsorCampaign) []CampaignDoc {
	if list == nil {
		return nil
	}
	out := make([]CampaignDoc, len(list))
	for i, c := range list {
		out[i] = CampaignFrom(c)
	}
	return out
}

// SponsorFromModel строит документ спонсора.
func SponsorFromModel(s models.Sponsor) (SponsorDocument, error) {
	k, err := key(s.ID)
	if err != nil {
		return SponsorDocument{}, err
	}
	return SponsorDocument{
		Key:        k,
		ID:         s.ID,
		Status:     s.Status,
		Name:       s.Name,
		Tier:       s.Tier,
		Categories: CategoriesFrom(s.Categories),
		Campaigns:  CampaignsFrom(s.Campaigns),
		Deleted:    s.Deleted,
		DeletedAt:  clonePtr(s.DeletedAt),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}, nil
}

func (d SponsorDocument) ToModel() models.Sponsor {
	var campaigns []models.SponsorCampaign
	if d.Campaigns != nil {
		campaigns = make([]models.SponsorCampaign, len(d.Campaigns))
		for i, c := range d.Campaigns {
			campaigns[i] = c.ToModel()
		}
	}
	return models.Sponsor{
		ID:         d.ID,
		Status:     d.Status,
		Name:       d.Name,
		Tier:       d.Tier,
		Categories: categoriesToModel(d.Categories),
		Campaigns:  campaigns,
		Deleted:    d.Deleted,
		DeletedAt:  clonePtr(d.DeletedAt),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
