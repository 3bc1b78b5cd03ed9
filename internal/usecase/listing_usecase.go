package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/listing"
	"github.com/vietlinker/listing-service/internal/port/cache"
	"github.com/vietlinker/listing-service/internal/port/repository"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrForbidden       = errors.New("user not authorized to perform this action")
	ErrInvalidInput    = errors.New("invalid input")
	// ErrSearchFailed marks a store-level query execution failure. It is
	// never produced for an empty result set.
	ErrSearchFailed = errors.New("listing query execution failed")
)

type EventPublisher interface {
	PublishListingCreated(ctx context.Context, l *entity.Listing) error
	PublishListingUpdated(ctx context.Context, l *entity.Listing) error
	PublishListingDeleted(ctx context.Context, listingID string) error
}

type ListingUseCase struct {
	repo      repository.ListingRepository
	cacheRepo cache.CacheRepository
	publisher EventPublisher
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewListingUseCase(
	repo repository.ListingRepository,
	cacheRepo cache.CacheRepository,
	publisher EventPublisher,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ListingUseCase {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ListingUseCase{
		repo:      repo,
		cacheRepo: cacheRepo,
		publisher: publisher,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func listingCacheKey(id string) string {
	return fmt.Sprintf("listing:%s", id)
}

type CreateListingInput struct {
	UserID      string
	CategoryID  string
	Type        entity.ListingType
	Title       string
	Description string
	Price       *float64
	Currency    string
	Location    string
}

func (in CreateListingInput) validate() error {
	if in.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if in.CategoryID == "" {
		return fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown listing type %q", ErrInvalidInput, in.Type)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, input CreateListingInput) (*entity.Listing, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	l := &entity.Listing{
		UserID:      input.UserID,
		CategoryID:  input.CategoryID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Currency:    currency,
		Location:    input.Location,
		Status:      entity.StatusActive,
		Photos:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := uc.repo.Create(ctx, l)
	if err != nil {
		uc.logger.Error("Failed to create listing in repository", zap.Error(err), zap.String("user_id", input.UserID))
		return nil, fmt.Errorf("ListingUseCase.CreateListing: %w", err)
	}
	l.ID = id

	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingCreated(ctx, l); pubErr != nil {
			uc.logger.Warn("Failed to publish listing created event", zap.Error(pubErr), zap.String("listing_id", l.ID))
		}
	}

	return l, nil
}

// GetListing serves reads cache-first and counts the view. A cache failure
// other than a miss is logged and falls through to the repository.
func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	if uc.cacheRepo != nil {
		key := listingCacheKey(id)
		cached, err := uc.cacheRepo.Get(ctx, key)
		if err == nil {
			var l entity.Listing
			if unmarshalErr := json.Unmarshal(cached, &l); unmarshalErr == nil {
				uc.countView(ctx, id)
				return &l, nil
			}
			uc.logger.Warn("Corrupted listing in cache, dropping", zap.String("key", key))
			if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
				uc.logger.Warn("Failed to delete corrupted cache entry", zap.String("key", key), zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		uc.logger.Error("Failed to get listing from repository", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("ListingUseCase.GetListing: %w", err)
	}

	uc.cacheListing(ctx, l)
	uc.countView(ctx, id)
	return l, nil
}

type UpdateListingInput struct {
	ID          string
	UserID      string
	CategoryID  string
	Title       string
	Description string
	Price       *float64
	Location    string
	Status      entity.ListingStatus
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, input UpdateListingInput) (*entity.Listing, error) {
	l, err := uc.ownedListing(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		l.Title = input.Title
	}
	if input.Description != "" {
		l.Description = input.Description
	}
	if input.CategoryID != "" {
		l.CategoryID = input.CategoryID
	}
	if input.Location != "" {
		l.Location = input.Location
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		l.Price = input.Price
	}
	if input.Status != "" {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown listing status %q", ErrInvalidInput, input.Status)
		}
		l.Status = input.Status
	}
	l.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, l); err != nil {
		uc.logger.Error("Failed to update listing in repository", zap.Error(err), zap.String("listing_id", l.ID))
		return nil, fmt.Errorf("ListingUseCase.UpdateListing: %w", err)
	}

	uc.invalidate(ctx, l.ID)
	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingUpdated(ctx, l); pubErr != nil {
			uc.logger.Warn("Failed to publish listing updated event", zap.Error(pubErr), zap.String("listing_id", l.ID))
		}
	}
	return l, nil
}

func (uc *ListingUseCase) UpdateListingStatus(ctx context.Context, id, userID string, status entity.ListingStatus) (*entity.Listing, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown listing status %q", ErrInvalidInput, status)
	}

	l, err := uc.ownedListing(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	l.Status = status
	l.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, l); err != nil {
		uc.logger.Error("Failed to update listing status", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("ListingUseCase.UpdateListingStatus: %w", err)
	}

	uc.invalidate(ctx, id)
	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingUpdated(ctx, l); pubErr != nil {
			uc.logger.Warn("Failed to publish listing updated event", zap.Error(pubErr), zap.String("listing_id", id))
		}
	}
	return l, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, id, userID string) error {
	if _, err := uc.ownedListing(ctx, id, userID); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		uc.logger.Error("Failed to delete listing from repository", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("ListingUseCase.DeleteListing: %w", err)
	}

	uc.invalidate(ctx, id)
	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingDeleted(ctx, id); pubErr != nil {
			uc.logger.Warn("Failed to publish listing deleted event", zap.Error(pubErr), zap.String("listing_id", id))
		}
	}
	return nil
}

type SearchListingsOutput struct {
	Listings   []*entity.Listing
	TotalCount int64
	Limit      int64
	Offset     int64
}

// SearchListings composes the filter into a query and executes it. Store
// failures surface as ErrSearchFailed, never as an empty result.
func (uc *ListingUseCase) SearchListings(ctx context.Context, filter listing.Filter) (*SearchListingsOutput, error) {
	query, err := listing.BuildQuery(filter)
	if err != nil {
		return nil, err
	}

	listings, total, err := uc.repo.Search(ctx, query)
	if err != nil {
		uc.logger.Error("Listing search failed in repository", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	return &SearchListingsOutput{
		Listings:   listings,
		TotalCount: total,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}, nil
}

func (uc *ListingUseCase) ownedListing(ctx context.Context, id, userID string) (*entity.Listing, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		uc.logger.Error("Failed to load listing", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("ListingUseCase: failed to load listing: %w", err)
	}
	if l.UserID != userID {
		uc.logger.Warn("Forbidden listing access",
			zap.String("listing_id", id),
			zap.String("owner_id", l.UserID),
			zap.String("user_id", userID),
		)
		return nil, ErrForbidden
	}
	return l, nil
}

func (uc *ListingUseCase) cacheListing(ctx context.Context, l *entity.Listing) {
	if uc.cacheRepo == nil || l == nil {
		return
	}
	data, err := json.Marshal(l)
	if err != nil {
		uc.logger.Warn("Failed to marshal listing for cache", zap.Error(err), zap.String("listing_id", l.ID))
		return
	}
	key := listingCacheKey(l.ID)
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to set listing in cache", zap.Error(err), zap.String("key", key))
	}
}

func (uc *ListingUseCase) invalidate(ctx context.Context, id string) {
	if uc.cacheRepo == nil {
		return
	}
	key := listingCacheKey(id)
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		uc.logger.Warn("Failed to invalidate listing cache", zap.Error(err), zap.String("key", key))
	}
}

// countView is best effort: a failed counter bump never fails the read.
func (uc *ListingUseCase) countView(ctx context.Context, id string) {
	if err := uc.repo.IncrementViews(ctx, id); err != nil {
		uc.logger.Warn("Failed to increment view counter", zap.Error(err), zap.String("listing_id", id))
	}
}
