package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/pkg/money"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WishRepository handles database operations related to wishes.
type WishRepository struct {
	collection *mongo.Collection
}

// NewWishRepository creates a new instance of WishRepository.
func NewWishRepository(db *mongo.Database) *WishRepository {
	return &WishRepository{collection: db.Collection("wishes")}
}

// CreateWish inserts a new wish. A violation of the per-owner content
// uniqueness index surfaces as apperr.ErrConflict.
func (r *WishRepository) CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	wish.CreatedAt = time.Now()
	wish.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, wish)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("wish with identical content: %w", apperr.ErrConflict)
		}
		logrus.WithError(err).Error("Failed to insert wish into database")
		return nil, fmt.Errorf("failed to create wish: %v", err)
	}

	wish.ID = result.InsertedID.(primitive.ObjectID)
	return wish, nil
}

// GetWishByID retrieves a single wish.
func (r *WishRepository) GetWishByID(ctx context.Context, id primitive.ObjectID) (*models.Wish, error) {
	var wish models.Wish
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&wish); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("wish %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wish: %v", err)
	}
	return &wish, nil
}

// GetWishesByOwner returns all wishes of a single user.
func (r *WishRepository) GetWishesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Wish, error) {
	return r.findWishes(ctx, bson.M{"owner_id": ownerID}, nil)
}

// GetAllWishes returns every wish.
func (r *WishRepository) GetAllWishes(ctx context.Context) ([]models.Wish, error) {
	return r.findWishes(ctx, bson.M{}, nil)
}

// FindWishByContent looks for a wish owned by ownerID whose content fields
// exactly match the given tuple. Returns nil without error when there is no
// match; this is the duplicate-copy probe.
func (r *WishRepository) FindWishByContent(ctx context.Context, ownerID primitive.ObjectID, name, link, image string, price money.Amount, description string) (*models.Wish, error) {
	filter := bson.M{
		"owner_id":    ownerID,
		"name":        name,
		"link":        link,
		"image":       image,
		"price":       price,
		"description": description,
	}

	var wish models.Wish
	if err := r.collection.FindOne(ctx, filter).Decode(&wish); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to probe for wish copy: %v", err)
	}
	return &wish, nil
}

// FindLastWishes returns the n most recently created wishes.
func (r *WishRepository) FindLastWishes(ctx context.Context, n int64) ([]models.Wish, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(n)
	return r.findWishes(ctx, bson.M{}, opts)
}

// FindTopWishes returns the n most copied wishes, ties broken by most
// recently created first.
func (r *WishRepository) FindTopWishes(ctx context.Context, n int64) ([]models.Wish, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "copied", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(n)
	return r.findWishes(ctx, bson.M{}, opts)
}

// UpdateWish applies the given field updates and returns the new document.
func (r *WishRepository) UpdateWish(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Wish, error) {
	updates["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Wish
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("wish %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		logrus.WithError(err).Error("Failed to update wish")
		return nil, fmt.Errorf("failed to update wish: %v", err)
	}
	return &updated, nil
}

// IncrementCopied bumps the popularity counter of the source wish by one.
func (r *WishRepository) IncrementCopied(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"copied": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment copied counter: %v", err)
	}
	return nil
}

// DeleteWish removes a wish.
func (r *WishRepository) DeleteWish(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete wish: %v", err)
	}
	return nil
}

func (r *WishRepository) findWishes(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Wish, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishes: %v", err)
	}
	defer cursor.Close(ctx)

	var wishes []models.Wish
	for cursor.Next(ctx) {
		var wish models.Wish
		if err := cursor.Decode(&wish); err != nil {
			return nil, fmt.Errorf("failed to decode wish: %v", err)
		}
		wishes = append(wishes, wish)
	}
	return wishes, cursor.Err()
}
