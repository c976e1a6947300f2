package models

import (
	"time"

	"github.com/nartbayev/wishwell/pkg/money"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offer is a monetary pledge by one user toward another user's wish. Offers
// are immutable once created and live for the lifetime of their wish. A
// hidden offer still counts toward the raised total but its contributor is
// masked in public views.
type Offer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	WishID    primitive.ObjectID `bson:"wish_id" json:"item_id"`
	Amount    money.Amount       `bson:"amount" json:"amount"`
	Hidden    bool               `bson:"hidden" json:"hidden"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	// Derived fields, filled in by the service layer on reads.
	User *PublicUser `bson:"-" json:"user,omitempty"`
	Item *Wish       `bson:"-" json:"item,omitempty"`
}
