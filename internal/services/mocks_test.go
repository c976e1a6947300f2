package services

import (
	"context"
	"sync"

	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/pkg/money"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hand-rolled mocks with per-method func fields; unset fields fall back to
// harmless defaults.

type mockWishStore struct {
	createWishFn        func(ctx context.Context, wish *models.Wish) (*models.Wish, error)
	getWishByIDFn       func(ctx context.Context, id primitive.ObjectID) (*models.Wish, error)
	getWishesByOwnerFn  func(ctx context.Context, ownerID primitive.ObjectID) ([]models.Wish, error)
	getAllWishesFn      func(ctx context.Context) ([]models.Wish, error)
	findWishByContentFn func(ctx context.Context, ownerID primitive.ObjectID, name, link, image string, price money.Amount, description string) (*models.Wish, error)
	findLastWishesFn    func(ctx context.Context, n int64) ([]models.Wish, error)
	findTopWishesFn     func(ctx context.Context, n int64) ([]models.Wish, error)
	updateWishFn        func(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Wish, error)
	incrementCopiedFn   func(ctx context.Context, id primitive.ObjectID) error
	deleteWishFn        func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockWishStore) CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	if m.createWishFn != nil {
		return m.createWishFn(ctx, wish)
	}
	wish.ID = primitive.NewObjectID()
	return wish, nil
}

func (m *mockWishStore) GetWishByID(ctx context.Context, id primitive.ObjectID) (*models.Wish, error) {
	if m.getWishByIDFn != nil {
		return m.getWishByIDFn(ctx, id)
	}
	return &models.Wish{ID: id}, nil
}

func (m *mockWishStore) GetWishesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Wish, error) {
	if m.getWishesByOwnerFn != nil {
		return m.getWishesByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockWishStore) GetAllWishes(ctx context.Context) ([]models.Wish, error) {
	if m.getAllWishesFn != nil {
		return m.getAllWishesFn(ctx)
	}
	return nil, nil
}

func (m *mockWishStore) FindWishByContent(ctx context.Context, ownerID primitive.ObjectID, name, link, image string, price money.Amount, description string) (*models.Wish, error) {
	if m.findWishByContentFn != nil {
		return m.findWishByContentFn(ctx, ownerID, name, link, image, price, description)
	}
	return nil, nil
}

func (m *mockWishStore) FindLastWishes(ctx context.Context, n int64) ([]models.Wish, error) {
	if m.findLastWishesFn != nil {
		return m.findLastWishesFn(ctx, n)
	}
	return nil, nil
}

func (m *mockWishStore) FindTopWishes(ctx context.Context, n int64) ([]models.Wish, error) {
	if m.findTopWishesFn != nil {
		return m.findTopWishesFn(ctx, n)
	}
	return nil, nil
}

func (m *mockWishStore) UpdateWish(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Wish, error) {
	if m.updateWishFn != nil {
		return m.updateWishFn(ctx, id, updates)
	}
	return &models.Wish{ID: id}, nil
}

func (m *mockWishStore) IncrementCopied(ctx context.Context, id primitive.ObjectID) error {
	if m.incrementCopiedFn != nil {
		return m.incrementCopiedFn(ctx, id)
	}
	return nil
}

func (m *mockWishStore) DeleteWish(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteWishFn != nil {
		return m.deleteWishFn(ctx, id)
	}
	return nil
}

type mockOfferStore struct {
	createOfferFn     func(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	getOfferByIDFn    func(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	getOffersByWishFn func(ctx context.Context, wishID primitive.ObjectID) ([]models.Offer, error)
	getAllOffersFn    func(ctx context.Context) ([]models.Offer, error)
}

func (m *mockOfferStore) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if m.createOfferFn != nil {
		return m.createOfferFn(ctx, offer)
	}
	offer.ID = primitive.NewObjectID()
	return offer, nil
}

func (m *mockOfferStore) GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	if m.getOfferByIDFn != nil {
		return m.getOfferByIDFn(ctx, id)
	}
	return &models.Offer{ID: id}, nil
}

func (m *mockOfferStore) GetOffersByWish(ctx context.Context, wishID primitive.ObjectID) ([]models.Offer, error) {
	if m.getOffersByWishFn != nil {
		return m.getOffersByWishFn(ctx, wishID)
	}
	return nil, nil
}

func (m *mockOfferStore) GetAllOffers(ctx context.Context) ([]models.Offer, error) {
	if m.getAllOffersFn != nil {
		return m.getAllOffersFn(ctx)
	}
	return nil, nil
}

type mockUserStore struct {
	createUserFn        func(ctx context.Context, user *models.User) (*models.User, error)
	getUserByIDFn       func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	getUserByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	searchUsersFn       func(ctx context.Context, query string) ([]models.User, error)
	updateUserFn        func(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error)
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	user.ID = primitive.NewObjectID()
	return user, nil
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return &models.User{ID: id, Username: "someone"}, nil
}

func (m *mockUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(ctx, username)
	}
	return &models.User{ID: primitive.NewObjectID(), Username: username}, nil
}

func (m *mockUserStore) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	if m.searchUsersFn != nil {
		return m.searchUsersFn(ctx, query)
	}
	return nil, nil
}

func (m *mockUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, id, updates)
	}
	return &models.User{ID: id}, nil
}

// memOfferStore is a stateful in-memory offer store for tests that need the
// raised total to evolve as offers land, including concurrent ones.
type memOfferStore struct {
	mu     sync.Mutex
	offers []models.Offer
}

func (m *memOfferStore) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	offer.ID = primitive.NewObjectID()
	m.offers = append(m.offers, *offer)
	return offer, nil
}

func (m *memOfferStore) GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.offers {
		if m.offers[i].ID == id {
			offer := m.offers[i]
			return &offer, nil
		}
	}
	return nil, nil
}

func (m *memOfferStore) GetOffersByWish(ctx context.Context, wishID primitive.ObjectID) ([]models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Offer
	for _, offer := range m.offers {
		if offer.WishID == wishID {
			out = append(out, offer)
		}
	}
	return out, nil
}

func (m *memOfferStore) GetAllOffers(ctx context.Context) ([]models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Offer(nil), m.offers...), nil
}
