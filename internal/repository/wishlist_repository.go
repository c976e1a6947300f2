package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WishlistRepository handles database operations related to wishlists.
type WishlistRepository struct {
	collection *mongo.Collection
}

// NewWishlistRepository creates a new instance of WishlistRepository.
func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{collection: db.Collection("wishlists")}
}

// CreateWishlist inserts a new wishlist.
func (r *WishlistRepository) CreateWishlist(ctx context.Context, list *models.Wishlist) (*models.Wishlist, error) {
	list.CreatedAt = time.Now()
	list.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, list)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert wishlist into database")
		return nil, fmt.Errorf("failed to create wishlist: %v", err)
	}

	list.ID = result.InsertedID.(primitive.ObjectID)
	return list, nil
}

// GetWishlistByID retrieves a single wishlist.
func (r *WishlistRepository) GetWishlistByID(ctx context.Context, id primitive.ObjectID) (*models.Wishlist, error) {
	var list models.Wishlist
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&list); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("wishlist %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wishlist: %v", err)
	}
	return &list, nil
}

// GetAllWishlists returns every wishlist.
func (r *WishlistRepository) GetAllWishlists(ctx context.Context) ([]models.Wishlist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishlists: %v", err)
	}
	defer cursor.Close(ctx)

	var lists []models.Wishlist
	for cursor.Next(ctx) {
		var list models.Wishlist
		if err := cursor.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to decode wishlist: %v", err)
		}
		lists = append(lists, list)
	}
	return lists, cursor.Err()
}

// UpdateWishlist applies the given field updates and returns the new document.
func (r *WishlistRepository) UpdateWishlist(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Wishlist, error) {
	updates["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Wishlist
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("wishlist %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update wishlist: %v", err)
	}
	return &updated, nil
}

// DeleteWishlist removes a wishlist.
func (r *WishlistRepository) DeleteWishlist(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %v", err)
	}
	return nil
}
