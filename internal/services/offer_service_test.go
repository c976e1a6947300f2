package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/ledger"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fixedWishStore(wish *models.Wish) *mockWishStore {
	return &mockWishStore{
		getWishByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Wish, error) {
			if id == wish.ID {
				copied := *wish
				return &copied, nil
			}
			return nil, fmt.Errorf("wish %s: %w", id.Hex(), apperr.ErrNotFound)
		},
	}
}

func TestCreateOffer_FundingScenario(t *testing.T) {
	owner := primitive.NewObjectID()
	wish := &models.Wish{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Price:   money.MustParse("100"),
	}

	offers := &memOfferStore{}
	svc := NewOfferService(offers, fixedWishStore(wish), &mockUserStore{})
	ctx := context.Background()

	u2 := primitive.NewObjectID()
	u3 := primitive.NewObjectID()
	u4 := primitive.NewObjectID()

	// U2 offers 60: fits.
	_, err := svc.CreateOffer(ctx, u2.Hex(), &models.CreateOfferRequest{
		ItemID: wish.ID.Hex(), Amount: money.MustParse("60"),
	})
	require.NoError(t, err)

	// U3 offers 50: 60+50 > 100.
	_, err = svc.CreateOffer(ctx, u3.Hex(), &models.CreateOfferRequest{
		ItemID: wish.ID.Hex(), Amount: money.MustParse("50"),
	})
	require.ErrorIs(t, err, apperr.ErrForbidden)

	// U3 offers 40: exactly fills the wish.
	_, err = svc.CreateOffer(ctx, u3.Hex(), &models.CreateOfferRequest{
		ItemID: wish.ID.Hex(), Amount: money.MustParse("40"),
	})
	require.NoError(t, err)

	current, err := offers.GetOffersByWish(ctx, wish.ID)
	require.NoError(t, err)
	assert.True(t, ledger.Raised(current).Equal(money.MustParse("100").Decimal))

	// U4 offers 1: wish is fully funded.
	_, err = svc.CreateOffer(ctx, u4.Hex(), &models.CreateOfferRequest{
		ItemID: wish.ID.Hex(), Amount: money.MustParse("1"),
	})
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCreateOffer_SelfGiftRejected(t *testing.T) {
	owner := primitive.NewObjectID()
	wish := &models.Wish{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Price:   money.MustParse("100"),
	}

	svc := NewOfferService(&memOfferStore{}, fixedWishStore(wish), &mockUserStore{})

	for _, amount := range []string{"0.01", "50", "100"} {
		_, err := svc.CreateOffer(context.Background(), owner.Hex(), &models.CreateOfferRequest{
			ItemID: wish.ID.Hex(), Amount: money.MustParse(amount),
		})
		require.ErrorIs(t, err, apperr.ErrForbidden, "amount %s", amount)
	}
}

func TestCreateOffer_MissingWishRejected(t *testing.T) {
	wish := &models.Wish{ID: primitive.NewObjectID(), Price: money.MustParse("10")}
	svc := NewOfferService(&memOfferStore{}, fixedWishStore(wish), &mockUserStore{})

	_, err := svc.CreateOffer(context.Background(), primitive.NewObjectID().Hex(), &models.CreateOfferRequest{
		ItemID: primitive.NewObjectID().Hex(), Amount: money.MustParse("5"),
	})
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCreateOffer_StructuralValidation(t *testing.T) {
	svc := NewOfferService(&memOfferStore{}, &mockWishStore{}, &mockUserStore{})
	ctx := context.Background()
	userID := primitive.NewObjectID().Hex()

	_, err := svc.CreateOffer(ctx, userID, &models.CreateOfferRequest{
		Amount: money.MustParse("5"),
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateOffer(ctx, userID, &models.CreateOfferRequest{
		ItemID: primitive.NewObjectID().Hex(), Amount: money.Zero(),
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateOffer(ctx, userID, &models.CreateOfferRequest{
		ItemID: primitive.NewObjectID().Hex(), Amount: money.MustParse("-5"),
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateOffer(ctx, userID, &models.CreateOfferRequest{
		ItemID: "not-an-id", Amount: money.MustParse("5"),
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateOffer_ConcurrentOffersNeverOvershoot(t *testing.T) {
	owner := primitive.NewObjectID()
	wish := &models.Wish{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Price:   money.MustParse("100"),
	}

	offers := &memOfferStore{}
	svc := NewOfferService(offers, fixedWishStore(wish), &mockUserStore{})
	ctx := context.Background()

	// Ten concurrent offers of 30 against a price of 100: exactly three can
	// fit, in any serialization.
	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateOffer(ctx, primitive.NewObjectID().Hex(), &models.CreateOfferRequest{
				ItemID: wish.ID.Hex(), Amount: money.MustParse("30"),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, apperr.ErrForbidden)
		}
	}
	assert.Equal(t, 3, succeeded)

	current, err := offers.GetOffersByWish(ctx, wish.ID)
	require.NoError(t, err)
	raised := ledger.Raised(current)
	assert.True(t, raised.Cmp(wish.Price.Decimal) <= 0, "raised %s exceeds price", raised.Canonical())
	assert.True(t, raised.Equal(money.MustParse("90").Decimal))
}

func TestCanContribute_ExactDecimalBoundary(t *testing.T) {
	owner := primitive.NewObjectID()
	wish := &models.Wish{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Price:   money.MustParse("0.30"),
	}

	offers := &memOfferStore{}
	svc := NewOfferService(offers, fixedWishStore(wish), &mockUserStore{})
	ctx := context.Background()

	// 0.1 + 0.2 must equal exactly 0.3; float accumulation would refuse
	// the second offer.
	_, err := svc.CreateOffer(ctx, primitive.NewObjectID().Hex(), &models.CreateOfferRequest{
		ItemID: wish.ID.Hex(), Amount: money.MustParse("0.10"),
	})
	require.NoError(t, err)

	_, err = svc.CreateOffer(ctx, primitive.NewObjectID().Hex(), &models.CreateOfferRequest{
		ItemID: wish.ID.Hex(), Amount: money.MustParse("0.20"),
	})
	require.NoError(t, err)

	assert.False(t, svc.CanContribute(ctx, primitive.NewObjectID(), wish.ID, money.MustParse("0.01")))
}

func TestGetOffer_AttachesContributorAndWish(t *testing.T) {
	contributor := primitive.NewObjectID()
	wishID := primitive.NewObjectID()
	offerID := primitive.NewObjectID()

	offerStore := &mockOfferStore{
		getOfferByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
			return &models.Offer{ID: offerID, UserID: contributor, WishID: wishID, Amount: money.MustParse("25")}, nil
		},
	}
	userStore := &mockUserStore{
		getUserByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return &models.User{ID: id, Username: "helper", Email: "secret@example.com"}, nil
		},
	}
	wishStore := &mockWishStore{
		getWishByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Wish, error) {
			return &models.Wish{ID: id, Name: "camera"}, nil
		},
	}

	svc := NewOfferService(offerStore, wishStore, userStore)
	offer, err := svc.GetOffer(context.Background(), offerID.Hex())
	require.NoError(t, err)

	require.NotNil(t, offer.User)
	assert.Equal(t, "helper", offer.User.Username)
	require.NotNil(t, offer.Item)
	assert.Equal(t, "camera", offer.Item.Name)
}

func TestGetOffer_HiddenOfferMasksContributor(t *testing.T) {
	contributor := primitive.NewObjectID()
	offerID := primitive.NewObjectID()

	offerStore := &mockOfferStore{
		getOfferByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
			return &models.Offer{
				ID: offerID, UserID: contributor, WishID: primitive.NewObjectID(),
				Amount: money.MustParse("25"), Hidden: true,
			}, nil
		},
	}
	var lookedUp bool
	userStore := &mockUserStore{
		getUserByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			lookedUp = true
			return &models.User{ID: id, Username: "shy-helper"}, nil
		},
	}

	svc := NewOfferService(offerStore, &mockWishStore{}, userStore)
	offer, err := svc.GetOffer(context.Background(), offerID.Hex())
	require.NoError(t, err)

	assert.Nil(t, offer.User)
	assert.False(t, lookedUp)
	assert.Equal(t, "25.00", offer.Amount.Canonical())
	require.NotNil(t, offer.Item)
}

func TestGetOffers_HiddenContributorsMaskedInList(t *testing.T) {
	contributor := primitive.NewObjectID()
	wishID := primitive.NewObjectID()

	offerStore := &mockOfferStore{
		getAllOffersFn: func(ctx context.Context) ([]models.Offer, error) {
			return []models.Offer{
				{ID: primitive.NewObjectID(), UserID: contributor, WishID: wishID, Amount: money.MustParse("10"), Hidden: true},
				{ID: primitive.NewObjectID(), UserID: contributor, WishID: wishID, Amount: money.MustParse("5")},
			}, nil
		},
	}

	svc := NewOfferService(offerStore, &mockWishStore{}, &mockUserStore{})
	offers, err := svc.GetOffers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 2)

	for _, offer := range offers {
		if offer.Hidden {
			assert.Nil(t, offer.User)
			assert.Equal(t, "10.00", offer.Amount.Canonical())
		} else {
			assert.NotNil(t, offer.User)
		}
	}
}
