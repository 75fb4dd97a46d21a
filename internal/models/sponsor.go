package models

// Sponsor описывает рекламодателя площадки.
type Sponsor struct {
	ID         TaggedID          `json:"id"`
	Status     string            `json:"status"`
	Name       string            `json:"name"`
	Tier       string            `json:"tier"`
	Categories []Category        `json:"categories"`
	Campaigns  []SponsorCampaign `json:"campaigns"`
	Deleted    bool              `json:"deleted"`
	DeletedAt  *int64            `json:"deleted_at,omitempty"`
	CreatedAt  int64             `json:"created_at"`
	UpdatedAt  int64             `json:"updated_at"`
}

// SponsorCampaign рекламная кампания спонсора, ключ уникален в пределах спонсора.
type SponsorCampaign struct {
	Name      string  `json:"name"`
	Key       string  `json:"key"`
	Image     *Asset  `json:"image,omitempty"`
	Video     *Video  `json:"video,omitempty"`
	Title     *string `json:"title,omitempty"`
	Subtext   *string `json:"subtext,omitempty"`
	CTA       *string `json:"cta,omitempty"`
	URL       *string `json:"url,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// Campaign возвращает кампанию по ключу.
func (s Sponsor) Campaign(key string) (SponsorCampaign, bool) {
	for _, c := range s.Campaigns {
		if c.Key == key {
			return c, true
		}
	}
	return SponsorCampaign{}, false
}
