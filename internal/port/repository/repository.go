package repository

import (
	"context"
	"errors"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/listing"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateFavorite = errors.New("favorite already exists")
)

type ListingRepository interface {
	Create(ctx context.Context, l *entity.Listing) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, l *entity.Listing) error
	Delete(ctx context.Context, id string) error
	// Search executes a composed query and returns the matching page plus
	// the total match count for pagination.
	Search(ctx context.Context, q listing.Query) ([]*entity.Listing, int64, error)
	IncrementViews(ctx context.Context, id string) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *entity.Favorite) (string, error)
	Remove(ctx context.Context, userID, listingID string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error)
}
