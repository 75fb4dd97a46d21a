package models

// User описывает пользователя площадки.
type User struct {
	ID             TaggedID       `json:"id"`
	Email          string         `json:"email"`
	FullName       string         `json:"full_name"`
	Phone          *string        `json:"phone,omitempty"`
	Role           string         `json:"role"`
	Location       GeoLocation    `json:"location"`
	Disabled       bool           `json:"disabled"`
	PasswordHash   string         `json:"-"`
	PasswordReset  *PasswordReset `json:"-"`
	LastLoggedInAt int64          `json:"last_logged_in_at"`
	CreatedAt      int64          `json:"created_at"`
	UpdatedAt      int64          `json:"updated_at"`
	LegacyID       *string        `json:"-"`
}

// PasswordReset незавершённый запрос на сброс пароля.
type PasswordReset struct {
	RequestedAt int64  `json:"-"`
	Code        string `json:"-"`
}

// UserRef сокращённая копия пользователя, хранится внутри других документов.
type UserRef struct {
	ID       TaggedID `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
}

// Ref возвращает сокращённую копию пользователя.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Email: u.Email, FullName: u.FullName}
}
