package services

import (
	"context"

	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/pkg/money"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage interfaces consumed by the services. The mongo-backed
// implementations live in internal/repository; tests substitute mocks.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error)
}

type WishStore interface {
	CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error)
	GetWishByID(ctx context.Context, id primitive.ObjectID) (*models.Wish, error)
	GetWishesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Wish, error)
	GetAllWishes(ctx context.Context) ([]models.Wish, error)
	FindWishByContent(ctx context.Context, ownerID primitive.ObjectID, name, link, image string, price money.Amount, description string) (*models.Wish, error)
	FindLastWishes(ctx context.Context, n int64) ([]models.Wish, error)
	FindTopWishes(ctx context.Context, n int64) ([]models.Wish, error)
	UpdateWish(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Wish, error)
	IncrementCopied(ctx context.Context, id primitive.ObjectID) error
	DeleteWish(ctx context.Context, id primitive.ObjectID) error
}

type OfferStore interface {
	CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	GetOffersByWish(ctx context.Context, wishID primitive.ObjectID) ([]models.Offer, error)
	GetAllOffers(ctx context.Context) ([]models.Offer, error)
}

type WishlistStore interface {
	CreateWishlist(ctx context.Context, list *models.Wishlist) (*models.Wishlist, error)
	GetWishlistByID(ctx context.Context, id primitive.ObjectID) (*models.Wishlist, error)
	GetAllWishlists(ctx context.Context) ([]models.Wishlist, error)
	UpdateWishlist(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Wishlist, error)
	DeleteWishlist(ctx context.Context, id primitive.ObjectID) error
}
