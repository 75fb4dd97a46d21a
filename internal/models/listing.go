package models

// Listing описывает объявление о продаже.
// Category и User денормализованы и обновляются вместе с CategoryID/UserID.
type Listing struct {
	ID           TaggedID     `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Status       string       `json:"status"`
	CategoryID   TaggedID     `json:"category_id"`
	Category     Category     `json:"category"`
	Description  string       `json:"description"`
	Price        *int64       `json:"price,omitempty"`
	DisplayPrice string       `json:"display_price"`
	Images       []Asset      `json:"images"`
	Video        *Video       `json:"video,omitempty"`
	Location     *GeoLocation `json:"location,omitempty"`
	UserID       TaggedID     `json:"user_id"`
	User         UserRef      `json:"user"`
	LegacyID     *string      `json:"-"`
	AddedAt      int64        `json:"added_at"`
	UpdatedAt    int64        `json:"updated_at"`
	ExpiresAt    int64        `json:"expires_at"`
}

// Expired сообщает, устарело ли объявление к моменту now (мс).
func (l Listing) Expired(now int64) bool {
	return l.ExpiresAt > 0 && l.ExpiresAt <= now
}
