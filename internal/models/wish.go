package models

import (
	"time"

	"github.com/nartbayev/wishwell/pkg/money"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wish represents a desired item published by a user. The owner reference is
// immutable after creation. Copied counts how many times other users have
// duplicated this wish into their own registry.
type Wish struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Name        string             `bson:"name" json:"name"`
	Link        string             `bson:"link" json:"link"`
	Image       string             `bson:"image" json:"image"`
	Price       money.Amount       `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Copied      int64              `bson:"copied" json:"copied"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`

	// Derived fields, filled in by the service layer on reads.
	// Raised is always recomputed from the offer set and never stored.
	Raised money.Amount `bson:"-" json:"raised"`
	Offers []Offer      `bson:"-" json:"offers,omitempty"`
	Owner  *PublicUser  `bson:"-" json:"owner,omitempty"`
}
