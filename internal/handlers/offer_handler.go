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

// OfferHandler handles HTTP requests related to offers.
type OfferHandler struct {
	Service *services.OfferService
}

// NewOfferHandler creates a new instance of OfferHandler.
func NewOfferHandler(service *services.OfferService) *OfferHandler {
	return &OfferHandler{Service: service}
}

// CreateOfferHandler records a contribution toward a wish.
func (h *OfferHandler) CreateOfferHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode create offer request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	offer, err := h.Service.CreateOffer(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, offer)
}

// GetOffersHandler lists all offers.
func (h *OfferHandler) GetOffersHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	offers, err := h.Service.GetOffers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offers)
}

// GetOfferHandler returns a single offer by id.
func (h *OfferHandler) GetOfferHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	offer, err := h.Service.GetOffer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offer)
}
