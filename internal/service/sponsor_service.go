package service

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

type SponsorRepository interface {
	Add(ctx context.Context, sponsor models.Sponsor) (models.Sponsor, error)
	Find(ctx context.Context, id models.TaggedID) (*models.Sponsor, error)
	List(ctx context.Context) ([]models.Sponsor, error)
	Update(ctx context.Context, id models.TaggedID, patch repository.SponsorPatch) error
	Delete(ctx context.Context, id models.TaggedID) error
}

type CampaignRepository interface {
	Update(ctx context.Context, id models.TaggedID, campaigns []models.SponsorCampaign) error
}

type CategoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

// SponsorUpdate правка спонсора, nil означает "без изменений".
type SponsorUpdate struct {
	ID          models.TaggedID
	Name        *string
	Status      *string
	Tier        *string
	CategoryIDs *[]models.TaggedID
}

// CampaignInput поля новой кампании. Ключ строится из названия.
type CampaignInput struct {
	Name    string
	Image   *models.Asset
	Video   *models.Video
	Title   *string
	Subtext *string
	CTA     *string
	URL     *string
}

// CampaignUpdate правка кампании, nil означает "без изменений".
type CampaignUpdate struct {
	Name    *string
	Image   *models.Asset
	Video   *models.Video
	Title   *string
	Subtext *string
	CTA     *string
	URL     *string
}

type SponsorService struct {
	sponsors   SponsorRepository
	campaigns  CampaignRepository
	categories CategoryLister
	now        func() int64
}

func NewSponsorService(sponsors SponsorRepository, campaigns CampaignRepository, categories CategoryLister) *SponsorService {
	return &SponsorService{
		sponsors:   sponsors,
		campaigns:  campaigns,
		categories: categories,
		now:        models.Now,
	}
}

// Add создаёт спонсора в статусе disabled с пробным тарифом.
func (s *SponsorService) Add(ctx context.Context, name string) (models.Sponsor, error) {
	if name == "" {
		return models.Sponsor{}, apperror.New(apperror.ErrCodeValidation, "имя спонсора обязательно")
	}
	now := s.now()
	sponsor := models.Sponsor{
		ID:         models.NewID(models.ModelSponsor),
		Status:     models.SponsorStatusDisabled,
		Name:       name,
		Tier:       models.SponsorTierTrial,
		Categories: []models.Category{},
		Campaigns:  []models.SponsorCampaign{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.sponsors.Add(ctx, sponsor); err != nil {
		return models.Sponsor{}, storeError(err, "sponsor service: add", logrus.Fields{"name": name})
	}
	return sponsor, nil
}

// Update меняет имя, статус, тариф и категории спонсора.
func (s *SponsorService) Update(ctx context.Context, in SponsorUpdate) (models.Sponsor, error) {
	sponsor, err := s.Find(ctx, in.ID)
	if err != nil {
		return models.Sponsor{}, err
	}
	if in.Status != nil && !validValue(models.ValidSponsorStatuses, *in.Status) {
		return models.Sponsor{}, apperror.New(apperror.ErrCodeValidation, "недопустимый статус спонсора")
	}
	if in.Tier != nil && !validValue(models.ValidSponsorTiers, *in.Tier) {
		return models.Sponsor{}, apperror.New(apperror.ErrCodeValidation, "недопустимый тариф спонсора")
	}

	now := s.now()
	patch := repository.SponsorPatch{
		Name:      in.Name,
		Status:    in.Status,
		Tier:      in.Tier,
		UpdatedAt: &now,
	}
	if in.CategoryIDs != nil {
		all, err := s.categories.List(ctx)
		if err != nil {
			return models.Sponsor{}, storeError(err, "sponsor service: list categories", nil)
		}
		selected := make([]models.Category, 0, len(*in.CategoryIDs))
		for _, c := range all {
			if slices.Contains(*in.CategoryIDs, c.ID) {
				selected = append(selected, c)
			}
		}
		patch.Categories = &selected
		sponsor.Categories = selected
	}

	if err := s.sponsors.Update(ctx, in.ID, patch); err != nil {
		return models.Sponsor{}, storeError(err, "sponsor service: update", logrus.Fields{"sponsor_id": in.ID})
	}
	if in.Name != nil {
		sponsor.Name = *in.Name
	}
	if in.Status != nil {
		sponsor.Status = *in.Status
	}
	if in.Tier != nil {
		sponsor.Tier = *in.Tier
	}
	sponsor.UpdatedAt = now
	return sponsor, nil
}

// Delete помечает спонсора удалённым.
func (s *SponsorService) Delete(ctx context.Context, id models.TaggedID) error {
	if _, err := s.Find(ctx, id); err != nil {
		return err
	}
	if err := s.sponsors.Delete(ctx, id); err != nil {
		return storeError(err, "sponsor service: delete", logrus.Fields{"sponsor_id": id})
	}
	return nil
}

// Find возвращает спонсора, в том числе удалённого.
func (s *SponsorService) Find(ctx context.Context, id models.TaggedID) (models.Sponsor, error) {
	sponsor, err := s.sponsors.Find(ctx, id)
	if err != nil {
		return models.Sponsor{}, storeError(err, "sponsor service: find", logrus.Fields{"sponsor_id": id})
	}
	if sponsor == nil {
		return models.Sponsor{}, apperror.ErrSponsorNotFound
	}
	return *sponsor, nil
}

// List возвращает неудалённых спонсоров.
func (s *SponsorService) List(ctx context.Context) ([]models.Sponsor, error) {
	sponsors, err := s.sponsors.List(ctx)
	if err != nil {
		return nil, storeError(err, "sponsor service: list", nil)
	}
	return sponsors, nil
}

// AddCampaign добавляет кампанию в конец списка. Ключ уникален в пределах спонсора.
func (s *SponsorService) AddCampaign(ctx context.Context, sponsorID models.TaggedID, in CampaignInput) (models.Sponsor, error) {
	sponsor, err := s.Find(ctx, sponsorID)
	if err != nil {
		return models.Sponsor{}, err
	}
	key := slugify(in.Name)
	if key == "" {
		return models.Sponsor{}, apperror.New(apperror.ErrCodeValidation, "название кампании обязательно")
	}
	if _, exists := sponsor.Campaign(key); exists {
		return models.Sponsor{}, apperror.ErrCampaignKeyTaken
	}

	now := s.now()
	campaigns := append(slices.Clone(sponsor.Campaigns), models.SponsorCampaign{
		Name:      in.Name,
		Key:       key,
		Image:     in.Image,
		Video:     in.Video,
		Title:     in.Title,
		Subtext:   in.Subtext,
		CTA:       in.CTA,
		URL:       in.URL,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return s.saveCampaigns(ctx, sponsor, campaigns)
}

// UpdateCampaign меняет поля кампании key, остальные кампании и их порядок не меняются.
func (s *SponsorService) UpdateCampaign(ctx context.Context, sponsorID models.TaggedID, key string, in CampaignUpdate) (models.Sponsor, error) {
	sponsor, err := s.Find(ctx, sponsorID)
	if err != nil {
		return models.Sponsor{}, err
	}
	idx := slices.IndexFunc(sponsor.Campaigns, func(c models.SponsorCampaign) bool { return c.Key == key })
	if idx < 0 {
		return models.Sponsor{}, apperror.ErrCampaignNotFound
	}


	campaigns := slices.Clone(sponsor.Campaigns)
	c := campaigns[idx]
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Image != nil {
		c.Image = in.Image
	}
	if in.Video != nil {
		c.Video = in.Video
	}
	if in.Title != nil {
		c.Title = in.Title
	}
	if in.Subtext != nil {
		c.Subtext = in.Subtext
	}
	if in.CTA != nil {
		c.CTA = in.CTA
	}
	if in.URL != nil {
		c.URL = in.URL
	}
	c.UpdatedAt = s.now()
	campaigns[idx] = c
	return s.saveCampaigns(ctx, sponsor, campaigns)
}

// RemoveCampaign удаляет кампанию по ключу.
func (s *SponsorService) RemoveCampaign(ctx context.Context, sponsorID models.TaggedID, key string) (models.Sponsor, error) {
	sponsor, err := s.Find(ctx, sponsorID)
	if err != nil {
		return models.Sponsor{}, err
	}
	if _, exists := sponsor.Campaign(key); !exists {
		return models.Sponsor{}, apperror.ErrCampaignNotFound
	}
	campaigns := slices.DeleteFunc(slices.Clone(sponsor.Campaigns), func(c models.SponsorCampaign) bool { return c.Key == key })
	return s.saveCampaigns(ctx, sponsor, campaigns)
}

func (s *SponsorService) saveCampaigns(ctx context.Context, sponsor models.Sponsor, campaigns []models.SponsorCampaign) (models.Sponsor, error) {
	if err := s.campaigns.Update(ctx, sponsor.ID, campaigns); err != nil {
		return models.Sponsor{}, storeError(err, "sponsor service: update campaigns", logrus.Fields{"sponsor_id": sponsor.ID})
	}
	sponsor.Campaigns = campaigns
	return sponsor, nil
}
