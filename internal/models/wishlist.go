package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wishlist groups wishes for sharing. It holds membership only: the wishes
// it references are owned by their own users, not by the list.
type Wishlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID   `bson:"owner_id" json:"owner_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Image       string               `bson:"image" json:"image"`
	ItemIDs     []primitive.ObjectID `bson:"item_ids" json:"item_ids"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`

	// Derived field, filled in by the service layer on reads.
	Items []Wish `bson:"-" json:"items,omitempty"`
}
