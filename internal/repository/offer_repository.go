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
)

// OfferRepository handles database operations related to offers. Offers are
// append-only: there is no update or delete path.
type OfferRepository struct {
	collection *mongo.Collection
}

// NewOfferRepository creates a new instance of OfferRepository.
func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{collection: db.Collection("offers")}
}

// CreateOffer appends a new offer. The wish row itself is never touched:
// the raised total is always derived from this collection on read.
func (r *OfferRepository) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, offer)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert offer into database")
		return nil, fmt.Errorf("failed to create offer: %v", err)
	}

	offer.ID = result.InsertedID.(primitive.ObjectID)
	return offer, nil
}

// GetOfferByID retrieves a single offer.
func (r *OfferRepository) GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&offer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("offer %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get offer: %v", err)
	}
	return &offer, nil
}

// GetOffersByWish returns every offer attached to a wish.
func (r *OfferRepository) GetOffersByWish(ctx context.Context, wishID primitive.ObjectID) ([]models.Offer, error) {
	return r.findOffers(ctx, bson.M{"wish_id": wishID})
}

// GetAllOffers returns every offer.
func (r *OfferRepository) GetAllOffers(ctx context.Context) ([]models.Offer, error) {
	return r.findOffers(ctx, bson.M{})
}

func (r *OfferRepository) findOffers(ctx context.Context, filter bson.M) ([]models.Offer, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %v", err)
	}
	defer cursor.Close(ctx)

	var offers []models.Offer
	for cursor.Next(ctx) {
		var offer models.Offer
		if err := cursor.Decode(&offer); err != nil {
			return nil, fmt.Errorf("failed to decode offer: %v", err)
		}
		offers = append(offers, offer)
	}
	return offers, cursor.Err()
}
