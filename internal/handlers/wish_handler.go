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

const (
	lastWishesCount = 40
	topWishesCount  = 20
)

// WishHandler handles HTTP requests related to wishes.
type WishHandler struct {
	Service *services.WishService
}

// NewWishHandler creates a new instance of WishHandler.
func NewWishHandler(service *services.WishService) *WishHandler {
	return &WishHandler{Service: service}
}

// CreateWishHandler publishes a new wish owned by the acting user.
func (h *WishHandler) CreateWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode create wish request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	wish, err := h.Service.CreateWish(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, wish)
}

// GetWishesHandler lists every wish.
func (h *WishHandler) GetWishesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wishes, err := h.Service.GetAllWishes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishes)
}

// GetLastWishesHandler lists the most recently published wishes. Public.
func (h *WishHandler) GetLastWishesHandler(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.Service.FindLastWishes(r.Context(), lastWishesCount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishes)
}

// GetTopWishesHandler lists the most copied wishes. Public.
func (h *WishHandler) GetTopWishesHandler(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.Service.FindTopWishes(r.Context(), topWishesCount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishes)
}

// GetWishHandler returns a single wish by id.
func (h *WishHandler) GetWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wish, err := h.Service.GetWish(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wish)
}

// UpdateWishHandler applies owner-initiated changes to a wish.
func (h *WishHandler) UpdateWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.UpdateWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode update wish request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	wish, err := h.Service.UpdateWish(r.Context(), mux.Vars(r)["id"], claims.UserID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wish)
}

// DeleteWishHandler removes a wish.
func (h *WishHandler) DeleteWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Service.DeleteWish(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Wish deleted"})
}

// CopyWishHandler duplicates someone else's wish into the acting user's
// registry.
func (h *WishHandler) CopyWishHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wish, err := h.Service.CopyWish(r.Context(), mux.Vars(r)["id"], claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, wish)
}
