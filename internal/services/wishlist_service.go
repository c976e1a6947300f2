package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistService manages wish collections. A wishlist holds references
// only; the wishes it lists keep their own owners.
type WishlistService struct {
	lists  WishlistStore
	wishes WishStore
}

// NewWishlistService creates a new instance of WishlistService.
func NewWishlistService(lists WishlistStore, wishes WishStore) *WishlistService {
	return &WishlistService{lists: lists, wishes: wishes}
}

// CreateWishlist creates a new list owned by userID.
func (s *WishlistService) CreateWishlist(ctx context.Context, userID string, req *models.CreateWishlistRequest) (*models.Wishlist, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	itemIDs, err := parseItemIDs(req.ItemIDs)
	if err != nil {
		return nil, err
	}

	list := &models.Wishlist{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ItemIDs:     itemIDs,
	}

	created, err := s.lists.CreateWishlist(ctx, list)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"wishlistID": created.ID.Hex(),
		"userID":     userID,
	}).Info("Wishlist created")

	return created, nil
}

// GetWishlist returns a single list with its wishes attached.
func (s *WishlistService) GetWishlist(ctx context.Context, id string) (*models.Wishlist, error) {
	listID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wishlist id", apperr.ErrValidation)
	}

	list, err := s.lists.GetWishlistByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	s.attachItems(ctx, list)
	return list, nil
}

// GetWishlists returns every list, with wishes attached.
func (s *WishlistService) GetWishlists(ctx context.Context) ([]models.Wishlist, error) {
	lists, err := s.lists.GetAllWishlists(ctx)
	if err != nil {
		return nil, err
	}

	for i := range lists {
		s.attachItems(ctx, &lists[i])
	}
	return lists, nil
}

// UpdateWishlist applies owner-initiated changes to a list.
func (s *WishlistService) UpdateWishlist(ctx context.Context, id, userID string, req *models.UpdateWishlistRequest) (*models.Wishlist, error) {
	listID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wishlist id", apperr.ErrValidation)
	}
	actorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	list, err := s.lists.GetWishlistByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != actorID {
		return nil, fmt.Errorf("%w: you can only edit your own wishlists", apperr.ErrForbidden)
	}

	updates := bson.M{}
	if req.Name != nil {
		if l := len(*req.Name); l < 1 || l > 250 {
			return nil, fmt.Errorf("%w: name must be 1-250 characters", apperr.ErrValidation)
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		if len(*req.Description) > 1500 {
			return nil, fmt.Errorf("%w: description must be at most 1500 characters", apperr.ErrValidation)
		}
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.ItemIDs != nil {
		itemIDs, err := parseItemIDs(req.ItemIDs)
		if err != nil {
			return nil, err
		}
		updates["item_ids"] = itemIDs
	}

	updated, err := s.lists.UpdateWishlist(ctx, listID, updates)
	if err != nil {
		return nil, err
	}

	s.attachItems(ctx, updated)
	return updated, nil
}

// DeleteWishlist removes a list. Owner-only.
func (s *WishlistService) DeleteWishlist(ctx context.Context, id, userID string) error {
	listID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid wishlist id", apperr.ErrValidation)
	}
	actorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	list, err := s.lists.GetWishlistByID(ctx, listID)
	if err != nil {
		return err
	}
	if list.OwnerID != actorID {
		return fmt.Errorf("%w: you can only delete your own wishlists", apperr.ErrForbidden)
	}

	if err := s.lists.DeleteWishlist(ctx, listID); err != nil {
		return err
	}

	logrus.WithField("wishlistID", id).Info("Wishlist deleted")
	return nil
}

// attachItems resolves the referenced wishes. Wishes deleted since being
// added to the list are skipped silently.
func (s *WishlistService) attachItems(ctx context.Context, list *models.Wishlist) {
	items := make([]models.Wish, 0, len(list.ItemIDs))
	for _, itemID := range list.ItemIDs {
		wish, err := s.wishes.GetWishByID(ctx, itemID)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				logrus.WithError(err).Warn("Failed to attach wish to wishlist")
			}
			continue
		}
		items = append(items, *wish)
	}
	list.Items = items
}

func parseItemIDs(raw []string) ([]primitive.ObjectID, error) {
	itemIDs := make([]primitive.ObjectID, 0, len(raw))
	for _, id := range raw {
		itemID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid item id %q", apperr.ErrValidation, id)
		}
		itemIDs = append(itemIDs, itemID)
	}
	return itemIDs, nil
}
