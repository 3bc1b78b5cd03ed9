package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/port/repository"
	"github.com/vietlinker/listing-service/internal/port/storage"
)

// MaxPhotoSize bounds a single upload; anything larger is rejected before
// the storage round trip.
const MaxPhotoSize = 5 * 1024 * 1024

type PhotoUseCase struct {
	listings repository.ListingRepository
	photos   storage.PhotoStorage
	logger   *zap.Logger
}

func NewPhotoUseCase(
	listings repository.ListingRepository,
	photos storage.PhotoStorage,
	logger *zap.Logger,
) *PhotoUseCase {
	return &PhotoUseCase{listings: listings, photos: photos, logger: logger}
}

// UploadPhoto stores a photo for the caller's own listing and attaches its
// URL to the listing record.
func (uc *PhotoUseCase) UploadPhoto(ctx context.Context, listingID, userID, fileName string, data []byte) (*entity.Listing, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty photo payload", ErrInvalidInput)
	}
	if len(data) > MaxPhotoSize {
		return nil, fmt.Errorf("%w: photo exceeds %d bytes", ErrInvalidInput, MaxPhotoSize)
	}

	l, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		uc.logger.Error("Failed to load listing for photo upload", zap.Error(err), zap.String("listing_id", listingID))
		return nil, fmt.Errorf("PhotoUseCase.UploadPhoto: %w", err)
	}
	if l.UserID != userID {
		return nil, ErrForbidden
	}

	url, err := uc.photos.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Failed to upload photo to storage", zap.Error(err), zap.String("listing_id", listingID))
		return nil, fmt.Errorf("PhotoUseCase.UploadPhoto: %w", err)
	}

	l.Photos = append(l.Photos, url)
	l.UpdatedAt = time.Now()
	if err := uc.listings.Update(ctx, l); err != nil {
		uc.logger.Error("Failed to attach photo URL to listing", zap.Error(err), zap.String("listing_id", listingID))
		return nil, fmt.Errorf("PhotoUseCase.UploadPhoto: %w", err)
	}
	return l, nil
}
