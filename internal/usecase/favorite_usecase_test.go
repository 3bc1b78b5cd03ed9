package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/port/repository"
)

func newFavoriteUseCaseForTest(favorites *MockFavoriteRepository, listings *MockListingRepository) *FavoriteUseCase {
	logger, _ := zap.NewDevelopment()
	return NewFavoriteUseCase(favorites, listings, logger)
}

func TestFavoriteUseCase_AddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockFavorites := new(MockFavoriteRepository)
		mockListings := new(MockListingRepository)
		uc := newFavoriteUseCaseForTest(mockFavorites, mockListings)

		mockListings.On("GetByID", ctx, "listing-1").Return(&entity.Listing{ID: "listing-1"}, nil).Once()
		mockFavorites.On("Add", ctx, mock.AnythingOfType("*entity.Favorite")).Return("fav-1", nil).Once()

		favorite, err := uc.AddFavorite(ctx, "user-1", "listing-1")

		require.NoError(t, err)
		assert.Equal(t, "fav-1", favorite.ID)
		assert.Equal(t, "user-1", favorite.UserID)
	})

	t.Run("ListingMissing", func(t *testing.T) {
		mockFavorites := new(MockFavoriteRepository)
		mockListings := new(MockListingRepository)
		uc := newFavoriteUseCaseForTest(mockFavorites, mockListings)

		mockListings.On("GetByID", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

		_, err := uc.AddFavorite(ctx, "user-1", "ghost")

		assert.ErrorIs(t, err, ErrListingNotFound)
		mockFavorites.AssertNotCalled(t, "Add")
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockFavorites := new(MockFavoriteRepository)
		mockListings := new(MockListingRepository)
		uc := newFavoriteUseCaseForTest(mockFavorites, mockListings)

		mockListings.On("GetByID", ctx, "listing-1").Return(&entity.Listing{ID: "listing-1"}, nil).Once()
		mockFavorites.On("Add", ctx, mock.AnythingOfType("*entity.Favorite")).Return("", repository.ErrDuplicateFavorite).Once()

		_, err := uc.AddFavorite(ctx, "user-1", "listing-1")

		assert.ErrorIs(t, err, ErrDuplicateFavorite)
	})

	t.Run("EmptyIDs", func(t *testing.T) {
		uc := newFavoriteUseCaseForTest(new(MockFavoriteRepository), new(MockListingRepository))

		_, err := uc.AddFavorite(ctx, "", "listing-1")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestFavoriteUseCase_RemoveFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockFavorites := new(MockFavoriteRepository)
		uc := newFavoriteUseCaseForTest(mockFavorites, new(MockListingRepository))

		mockFavorites.On("Remove", ctx, "user-1", "listing-1").Return(nil).Once()

		require.NoError(t, uc.RemoveFavorite(ctx, "user-1", "listing-1"))
	})

	t.Run("NotFavorited", func(t *testing.T) {
		mockFavorites := new(MockFavoriteRepository)
		uc := newFavoriteUseCaseForTest(mockFavorites, new(MockListingRepository))

		mockFavorites.On("Remove", ctx, "user-1", "listing-1").Return(repository.ErrNotFound).Once()

		err := uc.RemoveFavorite(ctx, "user-1", "listing-1")

		assert.ErrorIs(t, err, ErrListingNotFound)
	})
}

func TestFavoriteUseCase_ListFavorites(t *testing.T) {
	ctx := context.Background()
	mockFavorites := new(MockFavoriteRepository)
	uc := newFavoriteUseCaseForTest(mockFavorites, new(MockListingRepository))

	stored := []*entity.Favorite{{ID: "fav-1"}, {ID: "fav-2"}}
	mockFavorites.On("ListByUser", ctx, "user-1").Return(stored, nil).Once()

	favorites, err := uc.ListFavorites(ctx, "user-1")

	require.NoError(t, err)
	assert.Len(t, favorites, 2)
}
