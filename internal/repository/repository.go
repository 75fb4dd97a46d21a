package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// Имена коллекций базы данных.
const (
	UsersCollection      = "users"
	CategoriesCollection = "categories"
	ListingsCollection   = "listings"
	SponsorsCollection   = "sponsors"
	ReportsCollection    = "reports"
	ZipsCollection       = "zipcodes"
)

// Repository объединяет репозитории всех коллекций поверх одной базы.
type Repository struct {
	Users      *UserRepository
	Categories *CategoryRepository
	Listings   *ListingRepository
	Sponsors   *SponsorRepository
	Reports    *ReportRepository
	Zips       *ZipRepository
}

// New создаёт репозитории для базы db.
func New(db *mongo.Database) *Repository {
	return newRepository(db, models.Now)
}

func newRepository(db *mongo.Database, now func() int64) *Repository {
	return &Repository{
		Users:      NewUserRepository(db),
		Categories: NewCategoryRepository(db),
		Listings:   NewListingRepository(db),
		Sponsors:   newSponsorRepository(db, now),
		Reports:    newReportRepository(db, now),
		Zips:       NewZipRepository(db),
	}
}

// byFilter передаёт готовый фильтр в комбинатор без изменений.
func byFilter(f common.Filter) (common.Filter, error) {
	return f, nil
}

func setIf[T any](set bson.M, field string, v *T) {
	if v != nil {
		set[field] = *v
	}
}

// withSet оборачивает набор полей в $set, пустой набор даёт пустое обновление.
func withSet(set bson.M) common.Update {
	if len(set) == 0 {
		return common.Update{}
	}
	return common.Update{"$set": set}
}
