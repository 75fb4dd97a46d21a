package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/marketplace-backend/internal/fixtures"
	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// DefaultCategories категории, которые должны существовать на пустой площадке.
var DefaultCategories = []string{
	"Rifles",
	"Pistols",
	"Shotguns",
	"Ammunition",
	"Optics",
	"Accessories",
}

// demoPassword пароль всех демонстрационных пользователей.
const demoPassword = "Password123"

type SeedUserStore interface {
	Add(ctx context.Context, user models.User) (models.User, error)
}

type SeedListingStore interface {
	Add(ctx context.Context, listing models.Listing) (models.Listing, error)
}

// SeedService заполняет хранилище начальными данными.
type SeedService struct {
	categories CategoryRepository
	users      SeedUserStore
	listings   SeedListingStore
}

// NewSeedService создаёт сервис начальных данных.
func NewSeedService(categories CategoryRepository, users SeedUserStore, listings SeedListingStore) *SeedService {
	return &SeedService{categories: categories, users: users, listings: listings}
}

// SeedCategories добавляет недостающие категории из DefaultCategories.
// Возвращает число добавленных категорий.
func (s *SeedService) SeedCategories(ctx context.Context) (int, error) {
	added := 0
	for _, label := range DefaultCategories {
		slug := slugify(label)
		existing, err := s.categories.FindBySlug(ctx, slug)
		if err != nil {
			return added, storeError(err, "seed service: find category", logrus.Fields{"slug": slug})
		}
		if existing != nil {
			continue
		}
		category := models.Category{ID: models.NewID(models.ModelCategory), Label: label, Slug: slug}
		if _, err := s.categories.Add(ctx, category); err != nil {
			return added, storeError(err, "seed service: add category", logrus.Fields{"slug": slug})
		}
		added++
	}
	if added > 0 {
		logger.L().WithField("count", added).Info("seed service: categories added")
	}
	return added, nil
}

// SeedDemo создаёт numUsers пользователей и по listingsPerUser объявлений у каждого
// в существующих категориях. Только для окружения разработки.
func (s *SeedService) SeedDemo(ctx context.Context, numUsers, listingsPerUser int) error {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return storeError(err, "seed service: list categories", nil)
	}
	if len(categories) == 0 {
		return fmt.Errorf("seed service: нет категорий для демонстрационных объявлений")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed service: %w", err)
	}

	now := models.Now()
	for i := 0; i < numUsers; i++ {
		user := fixtures.User(func(u *models.User) {
			u.CreatedAt, u.UpdatedAt, u.LastLoggedInAt = now, now, now
			u.PasswordHash = string(hash)
			u.PasswordReset = nil
			u.LegacyID = nil
		})
		if _, err := s.users.Add(ctx, user); err != nil {
			return storeError(err, "seed service: add user", logrus.Fields{"email": user.Email})
		}
		for j := 0; j < listingsPerUser; j++ {
			category := categories[(i+j)%len(categories)]
			listing := fixtures.Listing(user, category, func(l *models.Listing) {
				l.Slug = slugify(l.Title + " " + l.ID.Suffix()[:5])
				l.DisplayPrice = formatPrice(l.Price)
				l.AddedAt, l.UpdatedAt = now, now
				l.ExpiresAt = now + DefaultListingTTL.Milliseconds()
				l.LegacyID = nil
			})
			if _, err := s.listings.Add(ctx, listing); err != nil {
				return storeError(err, "seed service: add listing", logrus.Fields{"user_id": user.ID})
			}
		}
	}

	logger.L().WithFields(logrus.Fields{"users": numUsers, "listings": numUsers * listingsPerUser}).Info("seed service: demo data added")
	return nil
}
