package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/port/repository"
)

var ErrDuplicateFavorite = errors.New("listing is already in favorites")

type FavoriteUseCase struct {
	favorites repository.FavoriteRepository
	listings  repository.ListingRepository
	logger    *zap.Logger
}

func NewFavoriteUseCase(
	favorites repository.FavoriteRepository,
	listings repository.ListingRepository,
	logger *zap.Logger,
) *FavoriteUseCase {
	return &FavoriteUseCase{favorites: favorites, listings: listings, logger: logger}
}

func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, listingID string) (*entity.Favorite, error) {
	if userID == "" || listingID == "" {
		return nil, fmt.Errorf("%w: user id and listing id are required", ErrInvalidInput)
	}

	// The listing must exist; favorites never point at deleted rows.
	if _, err := uc.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		uc.logger.Error("Failed to verify listing before favoriting", zap.Error(err), zap.String("listing_id", listingID))
		return nil, fmt.Errorf("FavoriteUseCase.AddFavorite: %w", err)
	}

	favorite := &entity.Favorite{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	id, err := uc.favorites.Add(ctx, favorite)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return nil, ErrDuplicateFavorite
		}
		uc.logger.Error("Failed to add favorite", zap.Error(err), zap.String("user_id", userID), zap.String("listing_id", listingID))
		return nil, fmt.Errorf("FavoriteUseCase.AddFavorite: %w", err)
	}
	favorite.ID = id
	return favorite, nil
}

func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	if err := uc.favorites.Remove(ctx, userID, listingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		uc.logger.Error("Failed to remove favorite", zap.Error(err), zap.String("user_id", userID), zap.String("listing_id", listingID))
		return fmt.Errorf("FavoriteUseCase.RemoveFavorite: %w", err)
	}
	return nil
}

func (uc *FavoriteUseCase) ListFavorites(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	favorites, err := uc.favorites.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list favorites", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("FavoriteUseCase.ListFavorites: %w", err)
	}
	return favorites, nil
}
