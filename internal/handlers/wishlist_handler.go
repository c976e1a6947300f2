package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/internal/services"
	"github.com/nartbayev/wishwell/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// WishlistHandler handles HTTP requests related to wishlists.
type WishlistHandler struct {
	Service *services.WishlistService
}

// NewWishlistHandler creates a new instance of WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{Service: service}
}

// CreateWishlistHandler creates a new wishlist.
func (h *WishlistHandler) CreateWishlistHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode create wishlist request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	list, err := h.Service.CreateWishlist(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, list)
}

// GetWishlistsHandler lists every wishlist.
func (h *WishlistHandler) GetWishlistsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	lists, err := h.Service.GetWishlists(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lists)
}

// GetWishlistHandler returns a single wishlist by id.
func (h *WishlistHandler) GetWishlistHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.Service.GetWishlist(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// UpdateWishlistHandler applies owner-initiated changes to a wishlist.
func (h *WishlistHandler) UpdateWishlistHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.UpdateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode update wishlist request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	list, err := h.Service.UpdateWishlist(r.Context(), mux.Vars(r)["id"], claims.UserID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// DeleteWishlistHandler removes a wishlist.
func (h *WishlistHandler) DeleteWishlistHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Service.DeleteWishlist(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Wishlist deleted"})
}
