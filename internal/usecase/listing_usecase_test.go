package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/listing"
	"github.com/vietlinker/listing-service/internal/port/cache"
	"github.com/vietlinker/listing-service/internal/port/repository"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, l *entity.Listing) (string, error) {
	args := m.Called(ctx, l)
	return args.String(0), args.Error(1)
}
func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}
func (m *MockListingRepository) Update(ctx context.Context, l *entity.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepository) Search(ctx context.Context, q listing.Query) ([]*entity.Listing, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}
func (m *MockListingRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishListingCreated(ctx context.Context, l *entity.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishListingUpdated(ctx context.Context, l *entity.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishListingDeleted(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

type MockFavoriteRepository struct{ mock.Mock }

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *entity.Favorite) (string, error) {
	args := m.Called(ctx, favorite)
	return args.String(0), args.Error(1)
}
func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}
func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Favorite), args.Error(1)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}
func (m *MockPhotoStorage) Delete(ctx context.Context, objectURL string) error {
	args := m.Called(ctx, objectURL)
	return args.Error(0)
}

func newListingUseCaseForTest(repo *MockListingRepository, cacheRepo *MockCacheRepository, publisher *MockEventPublisher) *ListingUseCase {
	logger, _ := zap.NewDevelopment()

	// Pass untyped nils through so the use case sees absent collaborators,
	// not typed nil pointers wrapped in non-nil interfaces.
	var c cache.CacheRepository
	if cacheRepo != nil {
		c = cacheRepo
	}
	var p EventPublisher
	if publisher != nil {
		p = publisher
	}
	return NewListingUseCase(repo, c, p, time.Minute, logger)
}

func TestListingUseCase_CreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		mockPub := new(MockEventPublisher)
		uc := newListingUseCaseForTest(mockRepo, nil, mockPub)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.Listing")).Return("listing-1", nil).Once()
		mockPub.On("PublishListingCreated", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil).Once()

		created, err := uc.CreateListing(ctx, CreateListingInput{
			UserID:     "user-1",
			CategoryID: "cat-1",
			Type:       entity.TypeMarketplace,
			Title:      "Xe máy Honda",
		})

		require.NoError(t, err)
		assert.Equal(t, "listing-1", created.ID)
		assert.Equal(t, entity.StatusActive, created.Status)
		assert.Equal(t, "USD", created.Currency)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		_, err := uc.CreateListing(ctx, CreateListingInput{
			UserID:     "user-1",
			CategoryID: "cat-1",
			Type:       entity.TypeMarketplace,
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("UnknownType", func(t *testing.T) {
		uc := newListingUseCaseForTest(new(MockListingRepository), nil, nil)

		_, err := uc.CreateListing(ctx, CreateListingInput{
			UserID:     "user-1",
			CategoryID: "cat-1",
			Type:       entity.ListingType("vehicle"),
			Title:      "Xe máy",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListingUseCase_GetListing(t *testing.T) {
	ctx := context.Background()
	stored := &entity.Listing{
		ID:     "listing-1",
		UserID: "user-1",
		Title:  "Phòng cho thuê",
		Status: entity.StatusActive,
	}

	t.Run("CacheHit", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		mockCache := new(MockCacheRepository)
		uc := newListingUseCaseForTest(mockRepo, mockCache, nil)

		cached, err := json.Marshal(stored)
		require.NoError(t, err)
		mockCache.On("Get", ctx, "listing:listing-1").Return(cached, nil).Once()
		mockRepo.On("IncrementViews", ctx, "listing-1").Return(nil).Once()

		got, err := uc.GetListing(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, stored.Title, got.Title)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("CacheMissFallsThrough", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		mockCache := new(MockCacheRepository)
		uc := newListingUseCaseForTest(mockRepo, mockCache, nil)

		mockCache.On("Get", ctx, "listing:listing-1").Return(nil, cache.ErrNotFound).Once()
		mockRepo.On("GetByID", ctx, "listing-1").Return(stored, nil).Once()
		mockCache.On("Set", ctx, "listing:listing-1", mock.Anything, time.Minute).Return(nil).Once()
		mockRepo.On("IncrementViews", ctx, "listing-1").Return(nil).Once()

		got, err := uc.GetListing(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		mockCache.AssertExpectations(t)
	})

	t.Run("CorruptedCacheEntryDropped", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		mockCache := new(MockCacheRepository)
		uc := newListingUseCaseForTest(mockRepo, mockCache, nil)

		mockCache.On("Get", ctx, "listing:listing-1").Return([]byte("{not json"), nil).Once()
		mockCache.On("Delete", ctx, "listing:listing-1").Return(nil).Once()
		mockRepo.On("GetByID", ctx, "listing-1").Return(stored, nil).Once()
		mockCache.On("Set", ctx, "listing:listing-1", mock.Anything, time.Minute).Return(nil).Once()
		mockRepo.On("IncrementViews", ctx, "listing-1").Return(nil).Once()

		got, err := uc.GetListing(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		mockCache.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		mockRepo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		_, err := uc.GetListing(ctx, "missing")

		assert.ErrorIs(t, err, ErrListingNotFound)
	})

	t.Run("ViewCounterFailureDoesNotFailRead", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		mockRepo.On("GetByID", ctx, "listing-1").Return(stored, nil).Once()
		mockRepo.On("IncrementViews", ctx, "listing-1").Return(errors.New("counter down")).Once()

		got, err := uc.GetListing(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
	})
}

func TestListingUseCase_UpdateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		mockCache := new(MockCacheRepository)
		mockPub := new(MockEventPublisher)
		uc := newListingUseCaseForTest(mockRepo, mockCache, mockPub)

		existing := &entity.Listing{ID: "listing-1", UserID: "user-1", Title: "Cũ"}
		mockRepo.On("GetByID", ctx, "listing-1").Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil).Once()
		mockCache.On("Delete", ctx, "listing:listing-1").Return(nil).Once()
		mockPub.On("PublishListingUpdated", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil).Once()

		updated, err := uc.UpdateListing(ctx, UpdateListingInput{
			ID:     "listing-1",
			UserID: "user-1",
			Title:  "Mới",
		})

		require.NoError(t, err)
		assert.Equal(t, "Mới", updated.Title)
		mockCache.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		existing := &entity.Listing{ID: "listing-1", UserID: "owner"}
		mockRepo.On("GetByID", ctx, "listing-1").Return(existing, nil).Once()

		_, err := uc.UpdateListing(ctx, UpdateListingInput{ID: "listing-1", UserID: "intruder", Title: "X"})

		assert.ErrorIs(t, err, ErrForbidden)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("NegativePrice", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		existing := &entity.Listing{ID: "listing-1", UserID: "user-1"}
		mockRepo.On("GetByID", ctx, "listing-1").Return(existing, nil).Once()

		bad := -5.0
		_, err := uc.UpdateListing(ctx, UpdateListingInput{ID: "listing-1", UserID: "user-1", Price: &bad})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListingUseCase_UpdateListingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		mockPub := new(MockEventPublisher)
		uc := newListingUseCaseForTest(mockRepo, nil, mockPub)

		existing := &entity.Listing{ID: "listing-1", UserID: "user-1", Status: entity.StatusActive}
		mockRepo.On("GetByID", ctx, "listing-1").Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil).Once()
		mockPub.On("PublishListingUpdated", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil).Once()

		updated, err := uc.UpdateListingStatus(ctx, "listing-1", "user-1", entity.StatusSold)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusSold, updated.Status)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		_, err := uc.UpdateListingStatus(ctx, "listing-1", "user-1", entity.ListingStatus("archived"))

		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestListingUseCase_DeleteListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		mockCache := new(MockCacheRepository)
		mockPub := new(MockEventPublisher)
		uc := newListingUseCaseForTest(mockRepo, mockCache, mockPub)

		existing := &entity.Listing{ID: "listing-1", UserID: "user-1"}
		mockRepo.On("GetByID", ctx, "listing-1").Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, "listing-1").Return(nil).Once()
		mockCache.On("Delete", ctx, "listing:listing-1").Return(nil).Once()
		mockPub.On("PublishListingDeleted", ctx, "listing-1").Return(nil).Once()

		err := uc.DeleteListing(ctx, "listing-1", "user-1")

		require.NoError(t, err)
		mockPub.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		existing := &entity.Listing{ID: "listing-1", UserID: "owner"}
		mockRepo.On("GetByID", ctx, "listing-1").Return(existing, nil).Once()

		err := uc.DeleteListing(ctx, "listing-1", "intruder")

		assert.ErrorIs(t, err, ErrForbidden)
		mockRepo.AssertNotCalled(t, "Delete")
	})
}

func TestListingUseCase_SearchListings(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		results := []*entity.Listing{{ID: "a"}, {ID: "b"}}
		mockRepo.On("Search", ctx, mock.AnythingOfType("listing.Query")).Return(results, int64(42), nil).Once()

		out, err := uc.SearchListings(ctx, listing.Filter{Location: "San Jose"})

		require.NoError(t, err)
		assert.Len(t, out.Listings, 2)
		assert.Equal(t, int64(42), out.TotalCount)
		assert.Equal(t, int64(listing.DefaultLimit), out.Limit)
		assert.Equal(t, int64(0), out.Offset)
	})

	t.Run("InvalidFilterRejectedBeforeStore", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		_, err := uc.SearchListings(ctx, listing.Filter{Limit: -1})

		assert.ErrorIs(t, err, listing.ErrInvalidFilter)
		mockRepo.AssertNotCalled(t, "Search")
	})

	t.Run("StoreFailureIsNotAnEmptyResult", func(t *testing.T) {
		mockRepo := new(MockListingRepository)
		uc := newListingUseCaseForTest(mockRepo, nil, nil)

		mockRepo.On("Search", ctx, mock.AnythingOfType("listing.Query")).Return(nil, int64(0), errors.New("connection reset")).Once()

		out, err := uc.SearchListings(ctx, listing.Filter{})

		assert.Nil(t, out)
		assert.ErrorIs(t, err, ErrSearchFailed)
	})
}
