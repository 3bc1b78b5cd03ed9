package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/pricing"
)

var ErrPackageNotFound = errors.New("credit package not found")

// CreditUseCase fronts the pricing engine for the purchase flow. It holds no
// state of its own; the catalog lives in the engine.
type CreditUseCase struct {
	engine *pricing.Engine
	logger *zap.Logger
}

func NewCreditUseCase(engine *pricing.Engine, logger *zap.Logger) *CreditUseCase {
	return &CreditUseCase{engine: engine, logger: logger}
}

// PackageView is a CreditPackage enriched with derived display values.
type PackageView struct {
	entity.CreditPackage
	FormattedPrice string `json:"formatted_price"`
	Savings        int64  `json:"savings,omitempty"`
}

func (uc *CreditUseCase) view(pkg entity.CreditPackage) PackageView {
	v := PackageView{
		CreditPackage:  pkg,
		FormattedPrice: pricing.FormatCurrency(float64(pkg.Price), "VND"),
	}
	if pkg.OriginalPrice > 0 {
		v.Savings = pricing.Savings(pkg.OriginalPrice, pkg.Price)
	}
	return v
}

// ListPackages returns the catalog ordered for display: the popular package
// first, the rest ascending by price.
func (uc *CreditUseCase) ListPackages(ctx context.Context) []PackageView {
	sorted := pricing.SortByPopularity(uc.engine.Packages())

	views := make([]PackageView, len(sorted))
	for i, pkg := range sorted {
		views[i] = uc.view(pkg)
	}
	return views
}

func (uc *CreditUseCase) GetPackage(ctx context.Context, id string) (*PackageView, error) {
	pkg, err := uc.engine.PackageByID(id)
	if err != nil {
		if errors.Is(err, pricing.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("CreditUseCase.GetPackage: %w", err)
	}
	v := uc.view(pkg)
	return &v, nil
}

// RecommendPackage returns nil when the catalog is empty.
func (uc *CreditUseCase) RecommendPackage(ctx context.Context) *PackageView {
	pkg := uc.engine.Recommended()
	if pkg == nil {
		return nil
	}
	v := uc.view(*pkg)
	return &v
}

// EstimateCredits prices the requested listing boosts.
func (uc *CreditUseCase) EstimateCredits(ctx context.Context, req entity.CreditCostRequest) (int, error) {
	if req.FeaturedDays < 0 || req.UrgentDays < 0 || req.ExtraPhotos < 0 {
		return 0, fmt.Errorf("%w: boost days and photo counts must not be negative", ErrInvalidInput)
	}
	return pricing.CreditsNeeded(req), nil
}

// PurchasePrecheck validates a package choice before the checkout session is
// created with the payment processor. It does not move money.
func (uc *CreditUseCase) PurchasePrecheck(ctx context.Context, packageID string) (*PackageView, error) {
	pkg, err := uc.engine.PackageByID(packageID)
	if err != nil {
		if errors.Is(err, pricing.ErrPackageNotFound) {
			uc.logger.Warn("Purchase precheck for unknown package", zap.String("package_id", packageID))
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("CreditUseCase.PurchasePrecheck: %w", err)
	}

	if !pricing.IsValidCreditAmount(float64(pkg.Credits)) {
		uc.logger.Error("Catalog package carries an invalid credit amount",
			zap.String("package_id", pkg.ID),
			zap.Int("credits", pkg.Credits),
		)
		return nil, fmt.Errorf("%w: package %q grants an invalid credit amount", ErrInvalidInput, pkg.ID)
	}

	v := uc.view(pkg)
	return &v, nil
}

// WebhookPrecheck runs the structural signature shape check. A passing
// result only means the header looks like a processor signature; the
// cryptographic verification happens in the payment processor SDK.
func (uc *CreditUseCase) WebhookPrecheck(ctx context.Context, payload []byte, signature, secret string) bool {
	ok := pricing.ValidateWebhookSignature(payload, signature, secret)
	if !ok {
		uc.logger.Warn("Webhook signature failed structural pre-check")
	}
	return ok
}
