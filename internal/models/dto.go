package models

import (
	"fmt"
	"net/url"

	"github.com/nartbayev/wishwell/pkg/money"
)

// Request payloads and their structural validation. Validation here covers
// shape only (presence, bounds, positivity); business rules such as the
// funding limit live in the services.

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	About    string `json:"about,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if l := len(r.Username); l < 2 || l > 30 {
		return fmt.Errorf("username must be 2-30 characters")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if len(r.Password) < 2 {
		return fmt.Errorf("password must be at least 2 characters")
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	About    *string `json:"about,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

type CreateWishRequest struct {
	Name        string       `json:"name"`
	Link        string       `json:"link"`
	Image       string       `json:"image"`
	Price       money.Amount `json:"price"`
	Description string       `json:"description"`
}

func (r *CreateWishRequest) Validate() error {
	if l := len(r.Name); l < 1 || l > 250 {
		return fmt.Errorf("name must be 1-250 characters")
	}
	if !validURL(r.Link) {
		return fmt.Errorf("link must be a valid URL")
	}
	if !validURL(r.Image) {
		return fmt.Errorf("image must be a valid URL")
	}
	if !r.Price.Positive() {
		return fmt.Errorf("price must be positive")
	}
	if l := len(r.Description); l < 1 || l > 1024 {
		return fmt.Errorf("description must be 1-1024 characters")
	}
	return nil
}

// UpdateWishRequest uses pointers so the service can tell "not sent" apart
// from "set to zero value". A price field, even an unchanged one, counts as
// a price change against the locked-wish guard.
type UpdateWishRequest struct {
	Name        *string       `json:"name,omitempty"`
	Link        *string       `json:"link,omitempty"`
	Image       *string       `json:"image,omitempty"`
	Price       *money.Amount `json:"price,omitempty"`
	Description *string       `json:"description,omitempty"`
}

func (r *UpdateWishRequest) Validate() error {
	if r.Name != nil {
		if l := len(*r.Name); l < 1 || l > 250 {
			return fmt.Errorf("name must be 1-250 characters")
		}
	}
	if r.Link != nil && !validURL(*r.Link) {
		return fmt.Errorf("link must be a valid URL")
	}
	if r.Image != nil && !validURL(*r.Image) {
		return fmt.Errorf("image must be a valid URL")
	}
	if r.Price != nil && !r.Price.Positive() {
		return fmt.Errorf("price must be positive")
	}
	if r.Description != nil {
		if l := len(*r.Description); l < 1 || l > 1024 {
			return fmt.Errorf("description must be 1-1024 characters")
		}
	}
	return nil
}

type CreateOfferRequest struct {
	ItemID string       `json:"item_id"`
	Amount money.Amount `json:"amount"`
	Hidden bool         `json:"hidden,omitempty"`
}

func (r *CreateOfferRequest) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("item_id is required")
	}
	if !r.Amount.Positive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

type CreateWishlistRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image"`
	ItemIDs     []string `json:"item_ids,omitempty"`
}

func (r *CreateWishlistRequest) Validate() error {
	if l := len(r.Name); l < 1 || l > 250 {
		return fmt.Errorf("name must be 1-250 characters")
	}
	if len(r.Description) > 1500 {
		return fmt.Errorf("description must be at most 1500 characters")
	}
	if !validURL(r.Image) {
		return fmt.Errorf("image must be a valid URL")
	}
	return nil
}

type UpdateWishlistRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	ItemIDs     []string `json:"item_ids,omitempty"`
}

func validURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
