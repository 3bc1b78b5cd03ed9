package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/listing"
	"github.com/vietlinker/listing-service/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, listing.ErrInvalidFilter):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, usecase.ErrListingNotFound), errors.Is(err, usecase.ErrPackageNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, usecase.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, usecase.ErrDuplicateFavorite):
		status = http.StatusConflict
		message = err.Error()
	default:
		logger.Error("Request failed", zap.Error(err))
	}

	respondJSON(w, logger, status, errorResponse{Error: message})
}
