package dto

import "github.com/ignatzorin/marketplace-backend/internal/models"

// Метки представлений, по ним клиент различает тип объекта.
const (
	ViewUser          = "igt.user"
	ViewCategory      = "igt.category"
	ViewSponsor       = "igt.sponsor"
	ViewListing       = "igt.listing"
	ViewListingReport = "igt.listing-report"
)

// UserView публичное представление пользователя без пароля и кода сброса.
type UserView struct {
	View           string             `json:"_view"`
	ID             models.TaggedID    `json:"id"`
	Email          string             `json:"email"`
	FullName       string             `json:"full_name"`
	Phone          *string            `json:"phone"`
	Role           string             `json:"role"`
	Location       models.GeoLocation `json:"location"`
	LastLoggedInAt int64              `json:"last_logged_in_at"`
	CreatedAt      int64              `json:"created_at"`
}

// PosterView владелец объявления в публичном представлении.
type PosterView struct {
	View     string          `json:"_view"`
	ID       models.TaggedID `json:"id"`
	FullName string          `json:"full_name"`
}

// ElevatedPosterView владелец объявления вместе с email.
type ElevatedPosterView struct {
	PosterView
	Email string `json:"email"`
}

// CategoryView представление категории.
type CategoryView struct {
	View  string          `json:"_view"`
	ID    models.TaggedID `json:"id"`
	Slug  string          `json:"slug"`
	Label string          `json:"label"`
}

// CampaignView представление рекламной кампании.
type CampaignView struct {
	Name      string        `json:"name"`
	Key       string        `json:"key"`
	Image     *models.Asset `json:"image"`
	Video     *models.Video `json:"video"`
	Title     *string       `json:"title"`
	Subtext   *string       `json:"subtext"`
	CTA       *string       `json:"cta"`
	URL       *string       `json:"url"`
	CreatedAt int64         `json:"created_at"`
	UpdatedAt int64         `json:"updated_at"`
}

// SponsorView представление спонсора. Признак удаления не показывается.
type SponsorView struct {
	View       string          `json:"_view"`
	ID         models.TaggedID `json:"id"`
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	Tier       string          `json:"tier"`
	Categories []CategoryView  `json:"categories"`
	Campaigns  []CampaignView  `json:"campaigns"`
	CreatedAt  int64           `json:"created_at"`
	UpdatedAt  int64           `json:"updated_at"`
}

// ListingView публичное представление объявления.
type ListingView struct {
	View         string              `json:"_view"`
	ID           models.TaggedID     `json:"id"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Status       string              `json:"status"`
	CategoryID   models.TaggedID     `json:"category_id"`
	Category     CategoryView        `json:"category"`
	Description  string              `json:"description"`
	Price        *int64              `json:"price"`
	DisplayPrice string              `json:"display_price"`
	Images       []models.Asset      `json:"images"`
	Video        *models.Video       `json:"video"`
	Location     *models.GeoLocation `json:"location"`
	UserID       models.TaggedID     `json:"user_id"`
	User         PosterView          `json:"user"`
	AddedAt      int64               `json:"added_at"`
	UpdatedAt    int64               `json:"updated_at"`
	ExpiresAt    int64               `json:"expires_at"`
}

// ElevatedListingView объявление для администраторов, с email владельца.
type ElevatedListingView struct {
	ListingView
	User ElevatedPosterView `json:"user"`
}

// ListingReportEventView одна жалоба. Для анонимной жалобы автор скрыт.
type ListingReportEventView struct {
	Anonymous bool                `json:"anonymous"`
	User      *ElevatedPosterView `json:"user"`
	Timestamp int64               `json:"timestamp"`
	Snapshot  ElevatedListingView `json:"snapshot"`
	Message   string              `json:"message"`
}

// ListingReportView запись жалоб на объявление.
type ListingReportView struct {
	View        string                   `json:"_view"`
	ID          models.TaggedID          `json:"id"`
	ListingID   models.TaggedID          `json:"listing_id"`
	Status      string                   `json:"status"`
	Reports     []ListingReportEventView `json:"reports"`
	DismissedAt *int64                   `json:"dismissed_at"`
	DismissedBy *ElevatedPosterView      `json:"dismissed_by"`
	ExpiresAt   int64                    `json:"expires_at"`
	CreatedAt   int64                    `json:"created_at"`
	UpdatedAt   int64                    `json:"updated_at"`
}

// NewUserView строит публичное представление пользователя.
func NewUserView(u models.User) UserView {
	return UserView{
		View:           ViewUser,
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          u.Phone,
		Role:           u.Role,
		Location:       u.Location,
		LastLoggedInAt: u.LastLoggedInAt,
		CreatedAt:      u.CreatedAt,
	}
}

// NewCategoryView строит представление категории.
func NewCategoryView(c models.Category) CategoryView {
	return CategoryView{View: ViewCategory, ID: c.ID, Slug: c.Slug, Label: c.Label}
}

// NewCategoryViews строит представления списка категорий.
func NewCategoryViews(list []models.Category) []CategoryView {
	out := make([]CategoryView, 0, len(list))
	for _, c := range list {
		out = append(out, NewCategoryView(c))
	}
	return out
}

// NewSponsorView строит представление спонсора.
func NewSponsorView(s models.Sponsor) SponsorView {
	campaigns := make([]CampaignView, 0, len(s.Campaigns))
	for _, c := range s.Campaigns {
		campaigns = append(campaigns, CampaignView{
			Name:      c.Name,
			Key:       c.Key,
			Image:     c.Image,
			Video:     c.Video,
			Title:     c.Title,
			Subtext:   c.Subtext,
			CTA:       c.CTA,
			URL:       c.URL,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return SponsorView{
		View:       ViewSponsor,
		ID:         s.ID,
		Name:       s.Name,
		Status:     s.Status,
		Tier:       s.Tier,
		Categories: NewCategoryViews(s.Categories),
		Campaigns:  campaigns,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// NewListingView строит публичное представление: у владельца только id и имя.
func NewListingView(l models.Listing) ListingView {
	images := l.Images
	if images == nil {
		images = []models.Asset{}
	}
	return ListingView{
		View:         ViewListing,
		ID:           l.ID,
		Title:        l.Title,
		Slug:         l.Slug,
		Status:       l.Status,
		CategoryID:   l.CategoryID,
		Category:     NewCategoryView(l.Category),
		Description:  l.Description,
		Price:        l.Price,
		DisplayPrice: l.DisplayPrice,
		Images:       images,
		Video:        l.Video,
		Location:     l.Location,
		UserID:       l.UserID,
		User:         posterView(l.User),
		AddedAt:      l.AddedAt,
		UpdatedAt:    l.UpdatedAt,
		ExpiresAt:    l.ExpiresAt,
	}
}

// NewListingViews строит представления списка объявлений.
func NewListingViews(list []models.Listing) []ListingView {
	out := make([]ListingView, 0, len(list))
	for _, l := range list {
		out = append(out, NewListingView(l))
	}
	return out
}

// NewElevatedListingView добавляет email владельца. Только для администраторов.
func NewElevatedListingView(l models.Listing) ElevatedListingView {
	return ElevatedListingView{
		ListingView: NewListingView(l),
		User:        elevatedPosterView(l.User),
	}
}

// NewListingReportView строит представление записи жалоб для модерации.
func NewListingReportView(r models.ListingReport) ListingReportView {
	events := make([]ListingReportEventView, 0, len(r.Reports))
	for _, e := range r.Reports {
		ev := ListingReportEventView{
			Anonymous: e.Anonymous,
			Timestamp: e.Timestamp,
			Snapshot:  NewElevatedListingView(e.Snapshot),
			Message:   e.Message,
		}
		if !e.Anonymous && e.User != nil {
			u := elevatedPosterView(*e.User)
			ev.User = &u
		}
		events = append(events, ev)
	}

	view := ListingReportView{
		View:        ViewListingReport,
		ID:          r.ID,
		ListingID:   r.ListingID,
		Status:      r.Status,
		Reports:     events,
		DismissedAt: r.DismissedAt,
		ExpiresAt:   r.ExpiresAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.DismissedBy != nil {
		by := elevatedPosterView(*r.DismissedBy)
		view.DismissedBy = &by
	}
	return view
}

// NewListingReportViews строит представления списка записей жалоб.
func NewListingReportViews(list []models.ListingReport) []ListingReportView {
	out := make([]ListingReportView, 0, len(list))
	for _, r := range list {
		out = append(out, NewListingReportView(r))
	}
	return out
}

func posterView(u models.UserRef) PosterView {
	return PosterView{View: ViewUser, ID: u.ID, FullName: u.FullName}
}

func elevatedPosterView(u models.UserRef) ElevatedPosterView {
	return ElevatedPosterView{PosterView: posterView(u), Email: u.Email}
}
