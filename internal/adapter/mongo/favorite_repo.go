package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vietlinker/listing-service/internal/entity"
	"github.com/vietlinker/listing-service/internal/port/repository"
)

const favoritesCollectionName = "favorites"

type FavoriteMongoRepository struct {
	db *mongo.Database
}

// NewFavoriteMongoRepository ensures the unique (user_id, listing_id) index
// that backs duplicate detection.
func NewFavoriteMongoRepository(ctx context.Context, client *mongo.Client, dbName string) (*FavoriteMongoRepository, error) {
	db := client.Database(dbName)

	_, err := db.Collection(favoritesCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "listing_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create favorites index: %w", err)
	}

	return &FavoriteMongoRepository{db: db}, nil
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ListingID string             `bson:"listing_id"`
	CreatedAt primitive.DateTime `bson:"created_at"`
}

func toFavoriteEntity(doc *favoriteDocument) *entity.Favorite {
	return &entity.Favorite{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		ListingID: doc.ListingID,
		CreatedAt: doc.CreatedAt.Time(),
	}
}

func (r *FavoriteMongoRepository) Add(ctx context.Context, favorite *entity.Favorite) (string, error) {
	doc := favoriteDocument{
		UserID:    favorite.UserID,
		ListingID: favorite.ListingID,
		CreatedAt: primitive.NewDateTimeFromTime(favorite.CreatedAt),
	}

	res, err := r.db.Collection(favoritesCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateFavorite
		}
		return "", fmt.Errorf("failed to add favorite in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *FavoriteMongoRepository) Remove(ctx context.Context, userID, listingID string) error {
	res, err := r.db.Collection(favoritesCollectionName).DeleteOne(ctx, bson.M{
		"user_id":    userID,
		"listing_id": listingID,
	})
	if err != nil {
		return fmt.Errorf("failed to remove favorite from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FavoriteMongoRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(favoritesCollectionName).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []favoriteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode favorites from mongo: %w", err)
	}

	favorites := make([]*entity.Favorite, len(docs))
	for i, doc := range docs {
		favorites[i] = toFavoriteEntity(&doc)
	}
	return favorites, nil
}
