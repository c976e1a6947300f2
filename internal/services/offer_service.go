package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/ledger"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/pkg/money"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OfferService gatekeeps creation of offers against wishes. An offer is
// accepted only if the wish exists, the contributor is not the owner, and
// the raised total plus the new amount stays within the price.
type OfferService struct {
	offers OfferStore
	wishes WishStore
	users  UserStore
	locks  *keyedMutex
}

// NewOfferService creates a new instance of OfferService.
func NewOfferService(offers OfferStore, wishes WishStore, users UserStore) *OfferService {
	return &OfferService{
		offers: offers,
		wishes: wishes,
		users:  users,
		locks:  serviceLocks,
	}
}

// CanContribute reports whether userID may pledge amount toward the wish.
// It never errors for business conditions: a missing wish, a self-gift or
// an amount that would overshoot the price all simply yield false.
func (s *OfferService) CanContribute(ctx context.Context, userID, wishID primitive.ObjectID, amount money.Amount) bool {
	wish, err := s.wishes.GetWishByID(ctx, wishID)
	if err != nil {
		return false
	}
	if wish.OwnerID == userID {
		return false
	}

	offers, err := s.offers.GetOffersByWish(ctx, wishID)
	if err != nil {
		logrus.WithError(err).WithField("wishID", wishID.Hex()).Error("Failed to load offers for funding check")
		return false
	}

	return ledger.Fits(ledger.Raised(offers), amount, wish.Price)
}

// CreateOffer validates the request, re-runs the funding check inside the
// wish's critical section and persists the offer. Holding the per-wish key
// from the read of current offers through the insert guarantees that two
// concurrent offers can never jointly exceed the price.
func (s *OfferService) CreateOffer(ctx context.Context, userID string, req *models.CreateOfferRequest) (*models.Offer, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	actorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}
	wishID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid item id", apperr.ErrValidation)
	}

	s.locks.Lock("offer:" + wishID.Hex())
	defer s.locks.Unlock("offer:" + wishID.Hex())

	if !s.CanContribute(ctx, actorID, wishID, req.Amount) {
		return nil, fmt.Errorf("%w: you cannot chip in on your own wish, or the amount exceeds what is left to raise", apperr.ErrForbidden)
	}

	offer := &models.Offer{
		UserID: actorID,
		WishID: wishID,
		Amount: req.Amount,
		Hidden: req.Hidden,
	}

	created, err := s.offers.CreateOffer(ctx, offer)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"offerID": created.ID.Hex(),
		"wishID":  wishID.Hex(),
		"amount":  created.Amount.Canonical(),
	}).Info("Offer created")

	return created, nil
}

// GetOffers returns all offers with contributor and target wish attached.
func (s *OfferService) GetOffers(ctx context.Context) ([]models.Offer, error) {
	offers, err := s.offers.GetAllOffers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range offers {
		s.decorate(ctx, &offers[i])
	}
	return offers, nil
}

// GetOffer returns a single offer with contributor and target wish attached.
func (s *OfferService) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	offerID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid offer id", apperr.ErrValidation)
	}

	offer, err := s.offers.GetOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	s.decorate(ctx, offer)
	return offer, nil
}

// decorate attaches the contributor's public profile and the target wish.
// Hidden offers keep their contributor unattached; the amount still shows.
// Decoration failures are logged but do not fail the read.
func (s *OfferService) decorate(ctx context.Context, offer *models.Offer) {
	if !offer.Hidden {
		user, err := s.users.GetUserByID(ctx, offer.UserID)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				logrus.WithError(err).Warn("Failed to attach contributor to offer")
			}
		} else {
			offer.User = user.Public()
		}
	}

	wish, err := s.wishes.GetWishByID(ctx, offer.WishID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			logrus.WithError(err).Warn("Failed to attach wish to offer")
		}
		return
	}
	offer.Item = wish
}
