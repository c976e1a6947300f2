package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultAbout  = "Has not told anything about themselves yet"
	DefaultAvatar = "https://i.pravatar.cc/300"
)

// User represents a registered account. Username and email are unique.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	About          string             `bson:"about" json:"about"`
	Avatar         string             `bson:"avatar" json:"avatar"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	LastActive     time.Time          `bson:"last_active,omitempty" json:"last_active,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the projection of a user shown to other users. It is a
// separate struct rather than a stripped-down User so that email and
// password can never leak through a forgotten field.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	About     string             `json:"about"`
	Avatar    string             `json:"avatar"`
	CreatedAt time.Time          `json:"created_at"`
}

// Public returns the public projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		About:     u.About,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
