package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/port/http/middleware"
	"github.com/vietlinker/listing-service/internal/usecase"
)

type FavoriteHandler struct {
	favorites *usecase.FavoriteUseCase
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites *usecase.FavoriteUseCase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

type addFavoriteRequest struct {
	ListingID string `json:"listing_id"`
}

func (h *FavoriteHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	favorite, err := h.favorites.AddFavorite(r.Context(), userID, req.ListingID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, favorite)
}

func (h *FavoriteHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.favorites.RemoveFavorite(r.Context(), userID, chi.URLParam(r, "listingID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	favorites, err := h.favorites.ListFavorites(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, favorites)
}
