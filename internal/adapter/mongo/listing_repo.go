package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/listing"
	"github.com/vietlinker/listing-service/internal/port/repository"
)

const listingsCollectionName = "listings"

type ListingMongoRepository struct {
	db *mongo.Database
}

func NewListingMongoRepository(client *mongo.Client, dbName string) *ListingMongoRepository {
	return &ListingMongoRepository{db: client.Database(dbName)}
}

type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	CategoryID  string             `bson:"category_id"`
	Type        string             `bson:"type"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       *float64           `bson:"price,omitempty"`
	Currency    string             `bson:"currency"`
	Location    string             `bson:"location"`
	Status      string             `bson:"status"`
	ViewsCount  int64              `bson:"views_count"`
	Photos      []string           `bson:"photos"`
	CreatedAt   primitive.DateTime `bson:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at"`
}

func toListingDocument(l *entity.Listing) (*listingDocument, error) {
	doc := &listingDocument{
		UserID:      l.UserID,
		CategoryID:  l.CategoryID,
		Type:        string(l.Type),
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Currency:    l.Currency,
		Location:    l.Location,
		Status:      string(l.Status),
		ViewsCount:  l.ViewsCount,
		Photos:      l.Photos,
		CreatedAt:   primitive.NewDateTimeFromTime(l.CreatedAt),
		UpdatedAt:   primitive.NewDateTimeFromTime(l.UpdatedAt),
	}
	if l.ID != "" {
		objID, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toListingEntity(doc *listingDocument) *entity.Listing {
	return &entity.Listing{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID,
		CategoryID:  doc.CategoryID,
		Type:        entity.ListingType(doc.Type),
		Title:       doc.Title,
		Description: doc.Description,
		Price:       doc.Price,
		Currency:    doc.Currency,
		Location:    doc.Location,
		Status:      entity.ListingStatus(doc.Status),
		ViewsCount:  doc.ViewsCount,
		Photos:      doc.Photos,
		CreatedAt:   doc.CreatedAt.Time(),
		UpdatedAt:   doc.UpdatedAt.Time(),
	}
}

func (r *ListingMongoRepository) Create(ctx context.Context, l *entity.Listing) (string, error) {
	doc, err := toListingDocument(l)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(listingsCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create listing in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *ListingMongoRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc listingDocument
	err = r.db.Collection(listingsCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing by id from mongo: %w", err)
	}
	return toListingEntity(&doc), nil
}

func (r *ListingMongoRepository) Update(ctx context.Context, l *entity.Listing) error {
	doc, err := toListingDocument(l)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("listing ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"category_id": doc.CategoryID,
			"type":        doc.Type,
			"title":       doc.Title,
			"description": doc.Description,
			"price":       doc.Price,
			"currency":    doc.Currency,
			"location":    doc.Location,
			"status":      doc.Status,
			"photos":      doc.Photos,
			"updated_at":  doc.UpdatedAt,
		},
	}

	res, err := r.db.Collection(listingsCollectionName).UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update listing in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListingMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(listingsCollectionName).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete listing from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Search executes a composed listing query. The criteria, ordering and
// window all come from the query builder; nothing is recomputed here.
func (r *ListingMongoRepository) Search(ctx context.Context, q listing.Query) ([]*entity.Listing, int64, error) {
	findOptions := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Offset).
		SetLimit(q.Limit)

	cursor, err := r.db.Collection(listingsCollectionName).Find(ctx, q.Criteria, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search listings in mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listing search results: %w", err)
	}

	listings := make([]*entity.Listing, len(docs))
	for i, doc := range docs {
		listings[i] = toListingEntity(&doc)
	}

	total, err := r.db.Collection(listingsCollectionName).CountDocuments(ctx, q.Criteria)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings in mongo: %w", err)
	}

	return listings, total, nil
}

func (r *ListingMongoRepository) IncrementViews(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(listingsCollectionName).UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"views_count": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment listing views in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
