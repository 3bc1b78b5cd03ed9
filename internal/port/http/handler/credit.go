package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/usecase"
)

type CreditHandler struct {
	credits       *usecase.CreditUseCase
	webhookSecret string
	logger        *zap.Logger
}

func NewCreditHandler(credits *usecase.CreditUseCase, webhookSecret string, logger *zap.Logger) *CreditHandler {
	return &CreditHandler{credits: credits, webhookSecret: webhookSecret, logger: logger}
}

func (h *CreditHandler) HandleListPackages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.credits.ListPackages(r.Context()))
}

func (h *CreditHandler) HandleGetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.credits.GetPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, pkg)
}

func (h *CreditHandler) HandleRecommendedPackage(w http.ResponseWriter, r *http.Request) {
	pkg := h.credits.RecommendPackage(r.Context())
	if pkg == nil {
		respondJSON(w, h.logger, http.StatusNotFound, errorResponse{Error: "no packages available"})
		return
	}
	respondJSON(w, h.logger, http.StatusOK, pkg)
}

type estimateCreditsRequest struct {
	FeaturedDays int `json:"featured_days"`
	UrgentDays   int `json:"urgent_days"`
	ExtraPhotos  int `json:"extra_photos"`
}

type estimateCreditsResponse struct {
	CreditsNeeded int `json:"credits_needed"`
}

func (h *CreditHandler) HandleEstimateCredits(w http.ResponseWriter, r *http.Request) {
	var req estimateCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	credits, err := h.credits.EstimateCredits(r.Context(), entity.CreditCostRequest{
		FeaturedDays: req.FeaturedDays,
		UrgentDays:   req.UrgentDays,
		ExtraPhotos:  req.ExtraPhotos,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, estimateCreditsResponse{CreditsNeeded: credits})
}

type purchasePrecheckRequest struct {
	PackageID string `json:"package_id"`
}

func (h *CreditHandler) HandlePurchasePrecheck(w http.ResponseWriter, r *http.Request) {
	var req purchasePrecheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pkg, err := h.credits.PurchasePrecheck(r.Context(), req.PackageID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, pkg)
}

type webhookPrecheckResponse struct {
	SignatureShapeValid bool `json:"signature_shape_valid"`
}

// HandleWebhookPrecheck reads the raw payload and the processor signature
// header and reports whether the signature passes the structural check.
func (h *CreditHandler) HandleWebhookPrecheck(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	ok := h.credits.WebhookPrecheck(r.Context(), payload, signature, h.webhookSecret)

	status := http.StatusOK
	if !ok {
		status = http.StatusBadRequest
	}
	respondJSON(w, h.logger, status, webhookPrecheckResponse{SignatureShapeValid: ok})
}
