package entity

// CreditPackage is a purchasable bundle of platform credits. The catalog of
// packages is fixed at process start and never mutated; prices are in VND.
type CreditPackage struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Credits       int      `json:"credits"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price,omitempty"`
	Discount      int      `json:"discount,omitempty"`
	Popular       bool     `json:"popular,omitempty"`
	Description   string   `json:"description,omitempty"`
	Features      []string `json:"features,omitempty"`
}

// CreditCostRequest describes the paid boosts requested for one listing.
// All fields default to zero; the base posting cost is charged regardless.
type CreditCostRequest struct {
	FeaturedDays int `json:"featured_days"`
	UrgentDays   int `json:"urgent_days"`
	ExtraPhotos  int `json:"extra_photos"`
}
