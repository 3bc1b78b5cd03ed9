package entity

import "time"

type ListingType string

const (
	TypeMarketplace ListingType = "marketplace"
	TypeService     ListingType = "service"
	TypeJob         ListingType = "job"
	TypeRealEstate  ListingType = "real_estate"
	TypeFood        ListingType = "food"
	TypeClassified  ListingType = "classified"
)

func (t ListingType) Valid() bool {
	switch t {
	case TypeMarketplace, TypeService, TypeJob, TypeRealEstate, TypeFood, TypeClassified:
		return true
	}
	return false
}

type ListingStatus string

const (
	StatusDraft     ListingStatus = "draft"
	StatusActive    ListingStatus = "active"
	StatusSold      ListingStatus = "sold"
	StatusExpired   ListingStatus = "expired"
	StatusSuspended ListingStatus = "suspended"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusSold, StatusExpired, StatusSuspended:
		return true
	}
	return false
}

// Listing is a single marketplace post owned by a user. Price is nil for
// listings without a fixed price (e.g. "contact for price" job posts).
type Listing struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	CategoryID  string        `json:"category_id"`
	Type        ListingType   `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       *float64      `json:"price,omitempty"`
	Currency    string        `json:"currency"`
	Location    string        `json:"location"`
	Status      ListingStatus `json:"status"`
	ViewsCount  int64         `json:"views_count"`
	Photos      []string      `json:"photos"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
