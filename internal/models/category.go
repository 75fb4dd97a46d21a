package models

// Category представляет категорию объявлений.
type Category struct {
	ID       TaggedID `json:"id"`
	Label    string   `json:"label"`
	Slug     string   `json:"slug"`
	LegacyID *string  `json:"-"`
}
