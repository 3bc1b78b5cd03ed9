package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/listing"
	"github.com/vietlinker/listing-service/internal/port/http/middleware"
	"github.com/vietlinker/listing-service/internal/usecase"
)

type ListingHandler struct {
	listings *usecase.ListingUseCase
	photos   *usecase.PhotoUseCase
	logger   *zap.Logger
}

func NewListingHandler(listings *usecase.ListingUseCase, photos *usecase.PhotoUseCase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, photos: photos, logger: logger}
}

type createListingRequest struct {
	CategoryID  string   `json:"category_id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency"`
	Location    string   `json:"location"`
}

func (h *ListingHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.listings.CreateListing(r.Context(), usecase.CreateListingInput{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Type:        entity.ListingType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Location:    req.Location,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, created)
}

func (h *ListingHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, l)
}

type updateListingRequest struct {
	CategoryID  string   `json:"category_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Location    string   `json:"location"`
	Status      string   `json:"status"`
}

func (h *ListingHandler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.listings.UpdateListing(r.Context(), usecase.UpdateListingInput{
		ID:          chi.URLParam(r, "id"),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Status:      entity.ListingStatus(req.Status),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, updated)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ListingHandler) HandleUpdateListingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.listings.UpdateListingStatus(r.Context(), chi.URLParam(r, "id"), userID, entity.ListingStatus(req.Status))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, updated)
}

func (h *ListingHandler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.listings.DeleteListing(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type searchListingsResponse struct {
	Listings   []*entity.Listing `json:"listings"`
	TotalCount int64             `json:"total_count"`
	Limit      int64             `json:"limit"`
	Offset     int64             `json:"offset"`
}

// HandleSearchListings maps query parameters onto a listing filter. Unknown
// parameters are ignored; malformed numeric ones are a 400.
func (h *ListingHandler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.listings.SearchListings(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, searchListingsResponse{
		Listings:   out.Listings,
		TotalCount: out.TotalCount,
		Limit:      out.Limit,
		Offset:     out.Offset,
	})
}

func filterFromQuery(r *http.Request) (listing.Filter, error) {
	q := r.URL.Query()
	filter := listing.Filter{
		Type:       entity.ListingType(q.Get("type")),
		CategoryID: q.Get("category_id"),
		Location:   q.Get("location"),
		Status:     entity.ListingStatus(q.Get("status")),
		UserID:     q.Get("user_id"),
	}

	var err error
	if filter.MinPrice, err = floatParam(q.Get("min_price")); err != nil {
		return listing.Filter{}, err
	}
	if filter.MaxPrice, err = floatParam(q.Get("max_price")); err != nil {
		return listing.Filter{}, err
	}
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		return listing.Filter{}, err
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		return listing.Filter{}, err
	}
	return filter, nil
}

func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func intParam(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// HandleUploadPhoto accepts a multipart form with a "photo" file field.
func (h *ListingHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(usecase.MaxPhotoSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "missing photo file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxPhotoSize+1))
	if err != nil {
		http.Error(w, "failed to read photo", http.StatusBadRequest)
		return
	}

	updated, err := h.photos.UploadPhoto(r.Context(), chi.URLParam(r, "id"), userID, header.Filename, data)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, updated)
}
