// Package pricing exposes the credit-package catalog and the pure pricing
// computations behind the credit purchase flow. Every operation here is
// side-effect free; the real payment and cryptographic webhook verification
// stay with the external payment processor.
package pricing

import (
	"errors"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/vietnamese"
)

// MaxCreditAmount is the largest credit balance a single purchase may grant.
const MaxCreditAmount = 10_000

// Listing boost costs, in credits.
const (
	baseListingCost    = 1
	featuredCostPerDay = 2
	urgentCostPerDay   = 3
	freePhotoAllowance = 5
	costPerExtraPhoto  = 1
)

var ErrPackageNotFound = errors.New("credit package not found")

// Engine answers catalog and pricing questions over an immutable package
// catalog injected at construction. It is safe for concurrent use.
type Engine struct {
	catalog []entity.CreditPackage
}

func NewEngine(catalog []entity.CreditPackage) *Engine {
	owned := make([]entity.CreditPackage, len(catalog))
	copy(owned, catalog)
	return &Engine{catalog: owned}
}

// Packages returns the catalog in declaration order.
func (e *Engine) Packages() []entity.CreditPackage {
	out := make([]entity.CreditPackage, len(e.catalog))
	copy(out, e.catalog)
	return out
}

func (e *Engine) PackageByID(id string) (entity.CreditPackage, error) {
	for _, pkg := range e.catalog {
		if pkg.ID == id {
			return pkg, nil
		}
	}
	return entity.CreditPackage{}, ErrPackageNotFound
}

// Recommended returns the catalog's recommendation; nil for an empty catalog.
func (e *Engine) Recommended() *entity.CreditPackage {
	return Recommend(e.catalog)
}

// SortByPopularity returns a new slice with the popular-flagged package
// first and the rest ascending by price. The sort is stable, so packages
// with equal prices keep their declaration order.
func SortByPopularity(packages []entity.CreditPackage) []entity.CreditPackage {
	out := make([]entity.CreditPackage, len(packages))
	copy(out, packages)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Popular != out[j].Popular {
			return out[i].Popular
		}
		return out[i].Price < out[j].Price
	})
	return out
}

// Recommend picks the popular-flagged package when one exists; otherwise the
// middle package of the price-ascending order. A simple heuristic, nothing
// more. Returns nil for an empty input.
func Recommend(packages []entity.CreditPackage) *entity.CreditPackage {
	if len(packages) == 0 {
		return nil
	}
	for _, pkg := range packages {
		if pkg.Popular {
			found := pkg
			return &found
		}
	}

	byPrice := make([]entity.CreditPackage, len(packages))
	copy(byPrice, packages)
	sort.SliceStable(byPrice, func(i, j int) bool { return byPrice[i].Price < byPrice[j].Price })

	middle := byPrice[len(byPrice)/2]
	return &middle
}

// DiscountPercentage is the rounded percentage saved buying at sale price.
// A non-positive original price yields 0 rather than an error; callers
// display the result directly and rely on that defined value.
func DiscountPercentage(original, sale int64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round(float64(original-sale) / float64(original) * 100))
}

// Savings is the absolute difference between original and sale price.
// Negative when the sale price exceeds the original; not clamped.
func Savings(original, sale int64) int64 {
	return original - sale
}

// IsValidCreditAmount reports whether credits is a positive whole number
// within the purchasable range.
func IsValidCreditAmount(credits float64) bool {
	return credits > 0 && credits <= MaxCreditAmount && credits == math.Trunc(credits)
}

// CreditsNeeded prices a listing with the requested boosts. Posting always
// costs one credit; the first five extra photos are free.
func CreditsNeeded(req entity.CreditCostRequest) int {
	extraPhotoCost := 0
	if req.ExtraPhotos > freePhotoAllowance {
		extraPhotoCost = (req.ExtraPhotos - freePhotoAllowance) * costPerExtraPhoto
	}
	return baseListingCost +
		req.FeaturedDays*featuredCostPerDay +
		req.UrgentDays*urgentCostPerDay +
		extraPhotoCost
}

// ValidateWebhookSignature is a structural pre-check only: it accepts any
// signature header carrying a comma-separated "t=" timestamp component.
// It does NOT verify the signature cryptographically — that remains the
// payment processor SDK's job on the actual purchase path.
func ValidateWebhookSignature(payload []byte, signature, secret string) bool {
	for _, part := range strings.Split(signature, ",") {
		if strings.HasPrefix(strings.TrimSpace(part), "t=") {
			return true
		}
	}
	return false
}

// FormatCurrency renders an amount for the given ISO currency code. VND uses
// Vietnamese grouping with no decimals; USD uses US grouping with up to two.
func FormatCurrency(amount float64, code string) string {
	switch strings.ToUpper(code) {
	case "VND":
		return vietnamese.FormatVND(amount)
	case "USD":
		return vietnamese.FormatUSD(amount)
	default:
		p := message.NewPrinter(language.English)
		return p.Sprintf("%s %v", strings.ToUpper(code), number.Decimal(amount, number.MaxFractionDigits(2)))
	}
}
