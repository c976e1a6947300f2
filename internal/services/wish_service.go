package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/ledger"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishService encapsulates the business rules for wishes: ownership guards,
// the locked-wish rules and duplication with popularity tracking.
type WishService struct {
	wishes WishStore
	offers OfferStore
	users  UserStore
	locks  *keyedMutex
}

// NewWishService creates a new instance of WishService.
func NewWishService(wishes WishStore, offers OfferStore, users UserStore) *WishService {
	return &WishService{
		wishes: wishes,
		offers: offers,
		users:  users,
		locks:  serviceLocks,
	}
}

// CreateWish publishes a new wish owned by userID.
func (s *WishService) CreateWish(ctx context.Context, userID string, req *models.CreateWishRequest) (*models.Wish, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	wish := &models.Wish{
		OwnerID:     ownerID,
		Name:        req.Name,
		Link:        req.Link,
		Image:       req.Image,
		Price:       req.Price,
		Description: req.Description,
	}

	created, err := s.wishes.CreateWish(ctx, wish)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"wishID": created.ID.Hex(),
		"userID": userID,
	}).Info("Wish created")

	return created, nil
}

// GetWish returns a wish with its offers, owner and derived raised total.
func (s *WishService) GetWish(ctx context.Context, id string) (*models.Wish, error) {
	wishID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wish id", apperr.ErrValidation)
	}

	wish, err := s.wishes.GetWishByID(ctx, wishID)
	if err != nil {
		return nil, err
	}

	if err := s.decorate(ctx, wish); err != nil {
		return nil, err
	}
	return wish, nil
}

// GetAllWishes returns every wish, decorated.
func (s *WishService) GetAllWishes(ctx context.Context) ([]models.Wish, error) {
	wishes, err := s.wishes.GetAllWishes(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, wishes)
}

// GetWishesByUser returns all wishes owned by the given user, decorated.
func (s *WishService) GetWishesByUser(ctx context.Context, ownerID primitive.ObjectID) ([]models.Wish, error) {
	wishes, err := s.wishes.GetWishesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, wishes)
}

// FindLastWishes returns the n most recently published wishes.
func (s *WishService) FindLastWishes(ctx context.Context, n int64) ([]models.Wish, error) {
	wishes, err := s.wishes.FindLastWishes(ctx, n)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, wishes)
}

// FindTopWishes returns the n most copied wishes, most recent first among
// ties.
func (s *WishService) FindTopWishes(ctx context.Context, n int64) ([]models.Wish, error) {
	wishes, err := s.wishes.FindTopWishes(ctx, n)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, wishes)
}

// UpdateWish applies owner-initiated changes. Non-owners are rejected, and
// a price change is rejected while the wish is locked (has any offers).
func (s *WishService) UpdateWish(ctx context.Context, id, userID string, req *models.UpdateWishRequest) (*models.Wish, error) {
	wishID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wish id", apperr.ErrValidation)
	}
	actorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	wish, err := s.wishes.GetWishByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.OwnerID != actorID {
		return nil, fmt.Errorf("%w: you can only edit your own wishes", apperr.ErrForbidden)
	}

	if req.Price != nil {
		// Hold the wish's offer key so the locked check and the price
		// write serialize with a concurrent first offer.
		key := "offer:" + wishID.Hex()
		s.locks.Lock(key)
		defer s.locks.Unlock(key)

		offers, err := s.offers.GetOffersByWish(ctx, wishID)
		if err != nil {
			return nil, err
		}
		if ledger.IsLocked(offers) {
			return nil, fmt.Errorf("%w: the price cannot change once someone has chipped in", apperr.ErrForbidden)
		}
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Link != nil {
		updates["link"] = *req.Link
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	updated, err := s.wishes.UpdateWish(ctx, wishID, updates)
	if err != nil {
		return nil, err
	}

	if err := s.decorate(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteWish removes a wish. Only the owner may delete, and only while the
// wish is unlocked.
func (s *WishService) DeleteWish(ctx context.Context, id, userID string) error {
	wishID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid wish id", apperr.ErrValidation)
	}
	actorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	wish, err := s.wishes.GetWishByID(ctx, wishID)
	if err != nil {
		return err
	}
	if wish.OwnerID != actorID {
		return fmt.Errorf("%w: you can only delete your own wishes", apperr.ErrForbidden)
	}

	key := "offer:" + wishID.Hex()
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	offers, err := s.offers.GetOffersByWish(ctx, wishID)
	if err != nil {
		return err
	}
	if ledger.IsLocked(offers) {
		return fmt.Errorf("%w: a wish cannot be deleted once someone has chipped in", apperr.ErrForbidden)
	}

	if err := s.wishes.DeleteWish(ctx, wishID); err != nil {
		return err
	}

	logrus.WithField("wishID", id).Info("Wish deleted")
	return nil
}

// CopyWish duplicates someone else's wish into the acting user's registry.
// The copy is a brand-new wish with identical content fields, zero offers
// and a zero copied counter; the source's copied counter is bumped by one.
// The probe-then-create sequence is serialized per (user, source wish), and
// the unique content index is the storage-level backstop against a race.
func (s *WishService) CopyWish(ctx context.Context, id, userID string) (*models.Wish, error) {
	wishID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wish id", apperr.ErrValidation)
	}
	actorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	key := "copy:" + userID + ":" + id
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	source, err := s.wishes.GetWishByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if source.OwnerID == actorID {
		return nil, fmt.Errorf("%w: you cannot copy your own wish", apperr.ErrForbidden)
	}

	existing, err := s.wishes.FindWishByContent(ctx, actorID, source.Name, source.Link, source.Image, source.Price, source.Description)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: you already have an identical copy of this wish", apperr.ErrDuplicateCopy)
	}

	copied := &models.Wish{
		OwnerID:     actorID,
		Name:        source.Name,
		Link:        source.Link,
		Image:       source.Image,
		Price:       source.Price,
		Description: source.Description,
	}

	created, err := s.wishes.CreateWish(ctx, copied)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("%w: you already have an identical copy of this wish", apperr.ErrDuplicateCopy)
		}
		return nil, err
	}

	// The counter is advisory (popular-wishes ranking only), so a failed
	// bump after a successful copy is logged rather than rolled back.
	if err := s.wishes.IncrementCopied(ctx, source.ID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"sourceWishID": source.ID.Hex(),
			"copyWishID":   created.ID.Hex(),
		}).Error("Copy created but the source copied counter was not bumped")
	}

	logrus.WithFields(logrus.Fields{
		"sourceWishID": source.ID.Hex(),
		"copyWishID":   created.ID.Hex(),
		"userID":       userID,
	}).Info("Wish copied")

	return created, nil
}

// decorate recomputes the raised total from the offer set and attaches the
// owner and the offers themselves. Contributors of hidden offers are left
// unattached so their identity never reaches a public view.
func (s *WishService) decorate(ctx context.Context, wish *models.Wish) error {
	offers, err := s.offers.GetOffersByWish(ctx, wish.ID)
	if err != nil {
		return err
	}

	wish.Raised = ledger.Raised(offers)
	for i := range offers {
		if offers[i].Hidden {
			continue
		}
		user, err := s.users.GetUserByID(ctx, offers[i].UserID)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				logrus.WithError(err).Warn("Failed to attach contributor to wish offer")
			}
			continue
		}
		offers[i].User = user.Public()
	}
	wish.Offers = offers

	owner, err := s.users.GetUserByID(ctx, wish.OwnerID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
	} else {
		wish.Owner = owner.Public()
	}
	return nil
}

func (s *WishService) decorateAll(ctx context.Context, wishes []models.Wish) ([]models.Wish, error) {
	for i := range wishes {
		if err := s.decorate(ctx, &wishes[i]); err != nil {
			return nil, err
		}
	}
	return wishes, nil
}
