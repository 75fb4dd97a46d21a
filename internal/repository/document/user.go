package document

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// UserDocument документ коллекции users.
// Поля с префиксом "_" не покидают сервер.
type UserDocument struct {
	Key            primitive.ObjectID `bson:"_id"`
	ID             models.TaggedID    `bson:"id"`
	Email          string             `bson:"email"`
	FullName       string             `bson:"fullName"`
	Phone          *string            `bson:"phone"`
	Role           string             `bson:"role"`
	Location       GeoLocationDoc     `bson:"location"`
	Disabled       bool               `bson:"disabled"`
	PasswordHash   string             `bson:"_passwordHash"`
	PasswordReset  *PasswordResetDoc  `bson:"_passwordReset"`
	LastLoggedInAt int64              `bson:"lastLoggedInAt"`
	CreatedAt      int64              `bson:"createdAt"`
	UpdatedAt      int64              `bson:"updatedAt"`
	LegacyID       *string            `bson:"_aspRecordId,omitempty"`
}

// PasswordResetDoc незавершённый сброс пароля.
type PasswordResetDoc struct {
	RequestedAt int64  `bson:"requestedAt"`
	Code        string `bson:"code"`
}

func PasswordResetFrom(r *models.PasswordReset) *PasswordResetDoc {
	if r == nil {
		return nil
	}
	return &PasswordResetDoc{RequestedAt: r.RequestedAt, Code: r.Code}
}

// UserFromModel строит документ пользователя.
func UserFromModel(u models.User) (UserDocument, error) {
	k, err := key(u.ID)
	if err != nil {
		return UserDocument{}, err
	}
	return UserDocument{
		Key:            k,
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          clonePtr(u.Phone),
		Role:           u.Role,
		Location:       GeoLocationFrom(u.Location),
		Disabled:       u.Disabled,
		PasswordHash:   u.PasswordHash,
		PasswordReset:  PasswordResetFrom(u.PasswordReset),
		LastLoggedInAt: u.LastLoggedInAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
		LegacyID:       clonePtr(u.LegacyID),
	}, nil
}

func (d UserDocument) ToModel() models.User {
	u := models.User{
		ID:             d.ID,
		Email:          d.Email,
		FullName:       d.FullName,
		Phone:          clonePtr(d.Phone),
		Role:           d.Role,
		Location:       d.Location.ToModel(),
		Disabled:       d.Disabled,
		PasswordHash:   d.PasswordHash,
		LastLoggedInAt: d.LastLoggedInAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		LegacyID:       clonePtr(d.LegacyID),
	}
	if d.PasswordReset != nil {
		u.PasswordReset = &models.PasswordReset{
			RequestedAt: d.PasswordReset.RequestedAt,
			Code:        d.PasswordReset.Code,
		}
	}
	return u
}
