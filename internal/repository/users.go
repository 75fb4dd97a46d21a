package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
	"github.com/ignatzorin/marketplace-backend/internal/repository/document"
)

var userOrderFields = map[string]string{
	"logged-in":  "lastLoggedInAt",
	"created-at": "createdAt",
}

// UserSearch параметры поиска пользователей. Page начинается с 1.
type UserSearch struct {
	Page     int64
	PageSize int64
	Order    string
	Disabled *bool
	Name     string
	Count    bool
}

// UserPatch изменяемые поля пользователя, nil означает "без изменений".
type UserPatch struct {
	Email              *string
	FullName           *string
	Phone              *string
	ClearPhone         bool
	Role               *string
	Location           *models.GeoLocation
	Disabled           *bool
	PasswordHash       *string
	PasswordReset      *models.PasswordReset
	ClearPasswordReset bool
	LastLoggedInAt     *int64
	UpdatedAt          *int64
}

type userUpdate struct {
	id    models.TaggedID
	patch UserPatch
}

// UserRepository отвечает за коллекцию users.
type UserRepository struct {
	add    func(context.Context, models.User) (models.User, error)
	find   func(context.Context, common.Filter) (*models.User, error)
	search func(context.Context, UserSearch) (common.Page[models.User], error)
	update func(context.Context, userUpdate) error
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		add: common.AddItem(db, common.AddConfig[models.User, document.UserDocument]{
			Collection: UsersCollection,
			ToDocument: document.UserFromModel,
		}),
		find: common.FindItem(db, common.FindConfig[common.Filter, document.UserDocument, models.User]{
			Collection: UsersCollection,
			ToFilter:   byFilter,
			ToModel:    document.UserDocument.ToModel,
		}),
		search: common.FindManyItems(db, common.FindManyConfig[UserSearch, document.UserDocument, models.User]{
			Collection: UsersCollection,
			ToFilter:   userSearchFilter,
			ToOptions:  userSearchOptions,
			Counted:    func(s UserSearch) bool { return s.Count },
			ToModel:    document.UserDocument.ToModel,
		}),
		update: common.UpdateOne(db, common.UpdateConfig[userUpdate]{
			Collection: UsersCollection,
			ToFilter:   func(u userUpdate) (common.Filter, error) { return common.ByKey(u.id) },
			ToUpdate:   func(u userUpdate) (common.Update, error) { return u.patch.toUpdate(), nil },
		}),
	}
}

// Add сохраняет нового пользователя.
func (r *UserRepository) Add(ctx context.Context, user models.User) (models.User, error) {
	return r.add(ctx, user)
}

// Find возвращает пользователя по идентификатору или nil.
func (r *UserRepository) Find(ctx context.Context, id models.TaggedID) (*models.User, error) {
	filter, err := common.ByKey(id)
	if err != nil {
		return nil, fmt.Errorf("user repository: find %w", err)
	}
	return r.find(ctx, filter)
}

// FindByEmail возвращает пользователя по email или nil.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, common.Filter{"email": email})
}

// FindByLegacyID ищет пользователя, перенесённого из старой системы.
func (r *UserRepository) FindByLegacyID(ctx context.Context, legacyID string) (*models.User, error) {
	return r.find(ctx, common.Filter{"_aspRecordId": legacyID})
}

// Search возвращает страницу пользователей.
func (r *UserRepository) Search(ctx context.Context, s UserSearch) (common.Page[models.User], error) {
	return r.search(ctx, s)
}

// Update применяет частичное обновление.
func (r *UserRepository) Update(ctx context.Context, id models.TaggedID, patch UserPatch) error {
	return r.update(ctx, userUpdate{id: id, patch: patch})
}

func userSearchFilter(s UserSearch) (common.Filter, error) {
	filter := common.Filter{}
	if s.Disabled != nil {
		filter["disabled"] = *s.Disabled
	}
	if s.Name != "" {
		filter["fullName"] = common.Contains(s.Name)
	}
	return filter, nil
}

func userSearchOptions(s UserSearch) common.FindOptions {
	return common.Paginate(s.Page, s.PageSize, common.ParseOrder(s.Order, userOrderFields))
}

func (p UserPatch) toUpdate() common.Update {
	set := bson.M{}
	setIf(set, "email", p.Email)
	setIf(set, "fullName", p.FullName)
	setIf(set, "role", p.Role)
	setIf(set, "disabled", p.Disabled)
	setIf(set, "_passwordHash", p.PasswordHash)
	setIf(set, "lastLoggedInAt", p.LastLoggedInAt)
	setIf(set, "updatedAt", p.UpdatedAt)

	if p.ClearPhone {
		set["phone"] = nil
	} else {
		setIf(set, "phone", p.Phone)
	}
	if p.Location != nil {
		set["location"] = document.GeoLocationFrom(*p.Location)
	}
	if p.ClearPasswordReset {
		set["_passwordReset"] = nil
	} else if p.PasswordReset != nil {
		set["_passwordReset"] = document.PasswordResetFrom(p.PasswordReset)
	}
	return withSet(set)
}
