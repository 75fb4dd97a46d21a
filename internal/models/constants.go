package models

// UserRole роли пользователей
const (
	UserRoleStandard      = "user"
	UserRoleAdmin         = "admin"
	UserRoleAdminObserver = "admin-observer"
)

// ListingStatus статусы объявлений
const (
	ListingStatusAvailable = "available"
	ListingStatusSold      = "sold"
)

// SponsorStatus статусы спонсоров
const (
	SponsorStatusActive   = "active"
	SponsorStatusDisabled = "disabled"
)

// SponsorTier уровни спонсорства
const (
	SponsorTierTrial    = "trial"
	SponsorTierFree     = "free"
	SponsorTierPartner  = "partner"
	SponsorTierFeatured = "featured"
)

// ReportStatus статусы жалоб
const (
	ReportStatusPending   = "pending"
	ReportStatusDismissed = "dismissed"
)

// Порядок сортировки в поиске, формат "<поле>:<направление>".
const (
	ListingOrderPriceAsc      = "price:asc"
	ListingOrderPriceDesc     = "price:desc"
	ListingOrderUpdatedAtAsc  = "updated-at:asc"
	ListingOrderUpdatedAtDesc = "updated-at:desc"

	UserOrderLoggedInAsc   = "logged-in:asc"
	UserOrderLoggedInDesc  = "logged-in:desc"
	UserOrderCreatedAtAsc  = "created-at:asc"
	UserOrderCreatedAtDesc = "created-at:desc"
)

// ValidUserRoles список валидных ролей
var ValidUserRoles = map[string]struct{}{
	UserRoleStandard:      {},
	UserRoleAdmin:         {},
	UserRoleAdminObserver: {},
}

// ValidListingStatuses список валидных статусов объявлений
var ValidListingStatuses = map[string]struct{}{
	ListingStatusAvailable: {},
	ListingStatusSold:      {},
}

// ValidSponsorStatuses список валидных статусов спонсоров
var ValidSponsorStatuses = map[string]struct{}{
	SponsorStatusActive:   {},
	SponsorStatusDisabled: {},
}

// ValidSponsorTiers список валидных уровней спонсорства
var ValidSponsorTiers = map[string]struct{}{
	SponsorTierTrial:    {},
	SponsorTierFree:     {},
	SponsorTierPartner:  {},
	SponsorTierFeatured: {},
}
