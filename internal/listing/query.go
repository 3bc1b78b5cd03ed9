// Package listing composes search filters into executable store queries.
// The builder is pure: it performs no I/O and never talks to MongoDB itself;
// the composed Query is handed to a repository for execution.
package listing

import (
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vietlinker/listing-service/internal/entity"
)

// DefaultLimit is the result window applied when a filter does not set one.
const DefaultLimit = 20

var ErrInvalidFilter = errors.New("invalid filter parameters")

// Filter is the loosely-typed search input. Every field is optional.
// Zero values mean "no constraint", except prices, which use pointers so
// that an explicit 0 bound is distinguishable from an absent one.
type Filter struct {
	Type       entity.ListingType
	CategoryID string
	Location   string
	MinPrice   *float64
	MaxPrice   *float64
	Status     entity.ListingStatus
	UserID     string
	Limit      int64
	Offset     int64
}

// Query is the composed, ordered, paginated constraint set ready for
// execution against the listing collection.
type Query struct {
	Criteria bson.M
	Sort     bson.D
	Limit    int64
	Offset   int64
}

// scope is the rule deciding whether a query targets public listings or a
// specific owner's rows. Exactly one variant applies to any filter.
type scope interface {
	apply(criteria bson.M)
}

// statusScope constrains public queries to a single status.
type statusScope struct {
	status entity.ListingStatus
}

func (s statusScope) apply(criteria bson.M) {
	criteria["status"] = string(s.status)
}

// ownerScope constrains to one owner's rows regardless of status, unless a
// status was explicitly requested alongside the owner.
type ownerScope struct {
	userID string
	status entity.ListingStatus
}

func (s ownerScope) apply(criteria bson.M) {
	criteria["user_id"] = s.userID
	if s.status != "" {
		criteria["status"] = string(s.status)
	}
}

func (f Filter) scope() scope {
	if f.UserID != "" {
		return ownerScope{userID: f.UserID, status: f.Status}
	}
	status := f.Status
	if status == "" {
		status = entity.StatusActive
	}
	return statusScope{status: status}
}

// Validate rejects values outside the documented domains. It deliberately
// does not reject MinPrice > MaxPrice: both bounds are composed independently
// and such a filter yields an empty, internally consistent result.
func (f Filter) Validate() error {
	if f.Type != "" && !f.Type.Valid() {
		return fmt.Errorf("%w: unknown listing type %q", ErrInvalidFilter, f.Type)
	}
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("%w: unknown listing status %q", ErrInvalidFilter, f.Status)
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("%w: min price must not be negative", ErrInvalidFilter)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: max price must not be negative", ErrInvalidFilter)
	}
	if f.Limit < 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidFilter)
	}
	if f.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidFilter)
	}
	return nil
}

// BuildQuery translates a Filter into a Query. Results are always ordered by
// creation time descending; the ordering is not configurable.
func BuildQuery(f Filter) (Query, error) {
	if err := f.Validate(); err != nil {
		return Query{}, err
	}

	criteria := bson.M{}
	f.scope().apply(criteria)

	if f.Type != "" {
		criteria["type"] = string(f.Type)
	}
	if f.CategoryID != "" {
		criteria["category_id"] = f.CategoryID
	}
	if f.Location != "" {
		criteria["location"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Location),
			Options: "i",
		}
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		criteria["price"] = price
	}

	limit := f.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	return Query{
		Criteria: criteria,
		Sort:     bson.D{{Key: "created_at", Value: -1}},
		Limit:    limit,
		Offset:   f.Offset,
	}, nil
}
