package models

// ListingReport агрегирует все жалобы на одно объявление.
// Пока запись в статусе pending, новые жалобы добавляются в Reports.
type ListingReport struct {
	ID          TaggedID             `json:"id"`
	ListingID   TaggedID             `json:"listing_id"`
	Status      string               `json:"status"`
	Reports     []ListingReportEvent `json:"reports"`
	DismissedAt *int64               `json:"dismissed_at,omitempty"`
	DismissedBy *UserRef             `json:"dismissed_by,omitempty"`
	ExpiresAt   int64                `json:"expires_at"`
	CreatedAt   int64                `json:"created_at"`
	UpdatedAt   int64                `json:"updated_at"`
}

// ListingReportEvent одна жалоба со снимком объявления на момент жалобы.
type ListingReportEvent struct {
	Anonymous bool     `json:"anonymous"`
	User      *UserRef `json:"user,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Snapshot  Listing  `json:"snapshot"`
	Message   string   `json:"message"`
}

// Open сообщает, принимает ли запись новые жалобы.
func (r ListingReport) Open() bool {
	return r.Status == ReportStatusPending
}
