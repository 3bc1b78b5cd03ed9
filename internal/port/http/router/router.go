package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/port/http/handler"
	"github.com/vietlinker/listing-service/internal/port/http/middleware"
)

// New assembles the service router. Search and reads are public; everything
// that writes on behalf of a user sits behind JWT auth.
func New(
	listingHandler *handler.ListingHandler,
	creditHandler *handler.CreditHandler,
	favoriteHandler *handler.FavoriteHandler,
	jwtSecret string,
	logger *zap.Logger,
) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(middleware.Logger(logger))
	mux.Use(middleware.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Get("/api/listings/search", listingHandler.HandleSearchListings)
	mux.Get("/api/listings/{id}", listingHandler.HandleGetListing)

	mux.Get("/api/credits/packages", creditHandler.HandleListPackages)
	mux.Get("/api/credits/packages/recommended", creditHandler.HandleRecommendedPackage)
	mux.Get("/api/credits/packages/{id}", creditHandler.HandleGetPackage)
	mux.Post("/api/credits/estimate", creditHandler.HandleEstimateCredits)
	mux.Post("/api/credits/webhook/precheck", creditHandler.HandleWebhookPrecheck)

	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Post("/api/listings", listingHandler.HandleCreateListing)
		r.Put("/api/listings/{id}", listingHandler.HandleUpdateListing)
		r.Patch("/api/listings/{id}/status", listingHandler.HandleUpdateListingStatus)
		r.Delete("/api/listings/{id}", listingHandler.HandleDeleteListing)
		r.Post("/api/listings/{id}/photos", listingHandler.HandleUploadPhoto)

		r.Post("/api/credits/purchase/precheck", creditHandler.HandlePurchasePrecheck)

		r.Post("/api/favorites", favoriteHandler.HandleAddFavorite)
		r.Delete("/api/favorites/{listingID}", favoriteHandler.HandleRemoveFavorite)
		r.Get("/api/favorites", favoriteHandler.HandleListFavorites)
	})

	return mux
}
