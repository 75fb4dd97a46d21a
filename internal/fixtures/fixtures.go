// Package fixtures строит правдоподобные доменные сущности для тестов и
// демонстрационных данных. В хранилище ничего не пишет.
package fixtures

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// Seed фиксирует генератор, чтобы данные повторялись между запусками.
func Seed(seed int64) {
	gofakeit.Seed(seed)
}

func strPtr(s string) *string {
	return &s
}

func millis() int64 {
	return gofakeit.Int64()&0xFFFFFFFFFFF + 1
}

// Location случайный адрес с координатами.
func Location() models.GeoLocation {
	return models.GeoLocation{
		Longitude: gofakeit.Longitude(),
		Latitude:  gofakeit.Latitude(),
		City:      gofakeit.City(),
		State:     gofakeit.State(),
		Zip:       gofakeit.Zip(),
	}
}

// User пользователь с ролью user.
func User(overrides ...func(*models.User)) models.User {
	created := millis()
	u := models.User{
		ID:             models.NewID(models.ModelUser),
		Email:          strings.ToLower(gofakeit.Email()),
		FullName:       gofakeit.Name(),
		Phone:          strPtr(gofakeit.Phone()),
		Role:           models.UserRoleStandard,
		Location:       Location(),
		PasswordHash:   gofakeit.UUID(),
		LastLoggedInAt: created,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	for _, o := range overrides {
		o(&u)
	}
	return u
}

// Category категория со slug из названия.
func Category(overrides ...func(*models.Category)) models.Category {
	label := gofakeit.Word() + " " + gofakeit.Word()
	c := models.Category{
		ID:    models.NewID(models.ModelCategory),
		Label: label,
		Slug:  strings.ReplaceAll(strings.ToLower(label), " ", "-"),
	}
	for _, o := range overrides {
		o(&c)
	}
	return c
}

// Listing объявление пользователя owner в категории category.
func Listing(owner models.User, category models.Category, overrides ...func(*models.Listing)) models.Listing {
	added := millis()
	price := int64(gofakeit.Number(100, 500000))
	loc := Location()
	title := gofakeit.Sentence(4)
	l := models.Listing{
		ID:           models.NewID(models.ModelListing),
		Title:        title,
		Slug:         fmt.Sprintf("%s-%d", strings.ToLower(gofakeit.Word()), gofakeit.Number(1000, 9999)),
		Status:       models.ListingStatusAvailable,
		CategoryID:   category.ID,
		Category:     category,
		Description:  gofakeit.Paragraph(1, 3, 8, " "),
		Price:        &price,
		DisplayPrice: fmt.Sprintf("$%d.%02d", price/100, price%100),
		Images: []models.Asset{
			{ID: gofakeit.UUID(), URL: gofakeit.URL()},
			{ID: gofakeit.UUID(), URL: gofakeit.URL()},
		},
		Location:  &loc,
		UserID:    owner.ID,
		User:      owner.Ref(),
		AddedAt:   added,
		UpdatedAt: added,
		ExpiresAt: added + 45*24*60*60*1000,
	}
	for _, o := range overrides {
		o(&l)
	}
	return l
}

// Campaign рекламная кампания с заполненными необязательными полями.
func Campaign(overrides ...func(*models.SponsorCampaign)) models.SponsorCampaign {
	name := gofakeit.Word() + " " + gofakeit.Word()
	created := millis()
	c := models.SponsorCampaign{
		Name:      name,
		Key:       strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		Image:     &models.Asset{ID: gofakeit.UUID(), URL: gofakeit.URL()},
		Video:     &models.Video{URL: gofakeit.URL()},
		Title:     strPtr(gofakeit.Sentence(3)),
		Subtext:   strPtr(gofakeit.Sentence(6)),
		CTA:       strPtr("Shop now"),
		URL:       strPtr(gofakeit.URL()),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, o := range overrides {
		o(&c)
	}
	return c
}

// Sponsor активный спонсор с одной кампанией.
func Sponsor(overrides ...func(*models.Sponsor)) models.Sponsor {
	created := millis()
	s := models.Sponsor{
		ID:         models.NewID(models.ModelSponsor),
		Status:     models.SponsorStatusActive,
		Name:       gofakeit.Company(),
		Tier:       models.SponsorTierPartner,
		Categories: []models.Category{Category()},
		Campaigns:  []models.SponsorCampaign{Campaign()},
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, o := range overrides {
		o(&s)
	}
	return s
}

// ReportEvent анонимная жалоба на объявление.
func ReportEvent(listing models.Listing) models.ListingReportEvent {
	return models.ListingReportEvent{
		Anonymous: true,
		Timestamp: millis(),
		Snapshot:  listing,
		Message:   gofakeit.Sentence(8),
	}
}

// Report открытая запись жалоб на объявление с одной жалобой.
func Report(listing models.Listing, overrides ...func(*models.ListingReport)) models.ListingReport {
	created := millis()
	r := models.ListingReport{
		ID:        models.NewID(models.ModelReport),
		ListingID: listing.ID,
		Status:    models.ReportStatusPending,
		Reports:   []models.ListingReportEvent{ReportEvent(listing)},
		ExpiresAt: listing.ExpiresAt,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, o := range overrides {
		o(&r)
	}
	return r
}
