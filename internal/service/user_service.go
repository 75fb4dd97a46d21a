package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// DefaultResetCooldown минимальный интервал между запросами на сброс пароля.
const DefaultResetCooldown = 5 * time.Minute

type UserRepository interface {
	Find(ctx context.Context, id models.TaggedID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Search(ctx context.Context, s repository.UserSearch) (common.Page[models.User], error)
	Update(ctx context.Context, id models.TaggedID, patch repository.UserPatch) error
}

// AdminUserUpdate правка пользователя администратором, nil означает "без изменений".
type AdminUserUpdate struct {
	ID       models.TaggedID
	Email    *string
	Phone    *string
	FullName *string
	Role     *string
	Disabled *bool
}

// UserSearchInput параметры поиска пользователей.
type UserSearchInput struct {
	Page     int64
	PageSize int64
	Order    string
	Name     string
	Disabled *bool
	Count    bool
}

// ResetTicket данные для письма со ссылкой на сброс пароля.
type ResetTicket struct {
	UserID   models.TaggedID
	Email    string
	FullName string
	Code     string
}

// FirstName возвращает первое слово полного имени для обращения в письме.
func (t ResetTicket) FirstName() string {
	if fields := strings.Fields(t.FullName); len(fields) > 0 {
		return fields[0]
	}
	return t.FullName
}

type UserService struct {
	repo     UserRepository
	cooldown time.Duration
	now      func() int64
	newCode  func() string
}

func NewUserService(repo UserRepository, cooldown time.Duration) *UserService {
	if cooldown <= 0 {
		cooldown = DefaultResetCooldown
	}
	return &UserService{
		repo:     repo,
		cooldown: cooldown,
		now:      models.Now,
		newCode:  func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

func (s *UserService) find(ctx context.Context, id models.TaggedID) (models.User, error) {
	user, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.User{}, storeError(err, "user service: find", logrus.Fields{"user_id": id})
	}
	if user == nil {
		return models.User{}, apperror.ErrUserNotFound
	}
	return *user, nil
}

// GetSelf возвращает пользователя по идентификатору из токена.
func (s *UserService) GetSelf(ctx context.Context, id models.TaggedID) (models.User, error) {
	return s.find(ctx, id)
}

// AdminUpdate меняет контактные данные, роль и блокировку пользователя.
func (s *UserService) AdminUpdate(ctx context.Context, in AdminUserUpdate) (models.User, error) {
	user, err := s.find(ctx, in.ID)
	if err != nil {
		return models.User{}, err
	}

	if in.Email != nil && *in.Email != user.Email {
		taken, err := s.repo.FindByEmail(ctx, *in.Email)
		if err != nil {
			return models.User{}, storeError(err, "user service: find by email", logrus.Fields{"user_id": in.ID})
		}
		if taken != nil && taken.ID != user.ID {
			return models.User{}, apperror.ErrEmailTaken
		}
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Role != nil {
		if !validValue(models.ValidUserRoles, *in.Role) {
			return models.User{}, apperror.New(apperror.ErrCodeValidation, "недопустимая роль пользователя")
		}
		user.Role = *in.Role
	}
	if in.Disabled != nil {
		user.Disabled = *in.Disabled
	}
	user.UpdatedAt = s.now()

	patch := repository.UserPatch{
		Email:     &user.Email,
		FullName:  &user.FullName,
		Phone:     user.Phone,
		Role:      &user.Role,
		Disabled:  &user.Disabled,
		UpdatedAt: &user.UpdatedAt,
	}
	if err := s.repo.Update(ctx, user.ID, patch); err != nil {
		return models.User{}, storeError(err, "user service: admin update", logrus.Fields{"user_id": user.ID})
	}
	return user, nil
}

// Search ищет пользователей. По умолчанию первая страница по 25, сортировка created-at:asc.
func (s *UserService) Search(ctx context.Context, in UserSearchInput) (common.Page[models.User], error) {
	page, pageSize := paging(in.Page, in.PageSize)
	order := in.Order
	if order == "" {
		order = models.UserOrderCreatedAtAsc
	}
	result, err := s.repo.Search(ctx, repository.UserSearch{
		Page:     page,
		PageSize: pageSize,
		Order:    order,
		Name:     in.Name,
		Disabled: in.Disabled,
		Count:    in.Count,
	})
	if err != nil {
		return common.Page[models.User]{}, storeError(err, "user service: search", logrus.Fields{"order": order, "page": page})
	}
	return result, nil
}

// StartPasswordReset выдаёт одноразовый код сброса пароля.
// Для неизвестного email возвращает nil, nil, чтобы не раскрывать наличие учётной записи.
func (s *UserService) StartPasswordReset(ctx context.Context, email string) (*ResetTicket, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "user service: find by email", nil)
	}
	if user == nil {
		return nil, nil
	}
	if user.Disabled {
		return nil, apperror.ErrUserDisabled
	}

	now := s.now()
	if r := user.PasswordReset; r != nil && r.RequestedAt > 0 && now-r.RequestedAt < s.cooldown.Milliseconds() {
		return nil, apperror.ErrResetCooldown
	}

	reset := models.PasswordReset{RequestedAt: now, Code: s.newCode()}
	if err := s.repo.Update(ctx, user.ID, repository.UserPatch{PasswordReset: &reset, UpdatedAt: &now}); err != nil {
		return nil, storeError(err, "user service: start reset", logrus.Fields{"user_id": user.ID})
	}
	return &ResetTicket{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Code:     reset.Code,
	}, nil
}

// FinishPasswordReset устанавливает новый пароль по коду из письма и гасит код.
func (s *UserService) FinishPasswordReset(ctx context.Context, id models.TaggedID, code, password string) (models.User, error) {
	user, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.User{}, storeError(err, "user service: find", logrus.Fields{"user_id": id})
	}
	// отсутствие пользователя и неверный код неразличимы снаружи
	if user == nil || user.PasswordReset == nil || code == "" ||
		subtle.ConstantTimeCompare([]byte(code), []byte(user.PasswordReset.Code)) != 1 {
		return models.User{}, apperror.ErrInvalidResetCode
	}
	if password == "" {
		return models.User{}, apperror.New(apperror.ErrCodeValidation, "пароль обязателен")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить пароль")
	}

	now := s.now()
	passwordHash := string(hash)
	patch := repository.UserPatch{
		PasswordHash:       &passwordHash,
		ClearPasswordReset: true,
		UpdatedAt:          &now,
	}
	if err := s.repo.Update(ctx, user.ID, patch); err != nil {
		return models.User{}, storeError(err, "user service: finish reset", logrus.Fields{"user_id": user.ID})
	}

	updated := *user
	updated.PasswordHash = passwordHash
	updated.PasswordReset = nil
	updated.UpdatedAt = now
	return updated, nil
}
