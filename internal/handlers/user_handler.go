package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nartbayev/wishwell/internal/config"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/internal/services"
	jwtutil "github.com/nartbayev/wishwell/pkg/jwt"
	"github.com/nartbayev/wishwell/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests related to accounts and profiles.
type UserHandler struct {
	Service     *services.UserService
	WishService *services.WishService
	Config      *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, wishService *services.WishService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service:     service,
		WishService: wishService,
		Config:      cfg,
	}
}

// SignupHandler handles user registration.
func (h *UserHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode signup request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.RegisterUser(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// SigninHandler verifies credentials and issues a token.
func (h *UserHandler) SigninHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode signin request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Username, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// GetOwnProfileHandler returns the acting user's full profile.
func (h *UserHandler) GetOwnProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateOwnProfileHandler updates the acting user's profile.
func (h *UserHandler) UpdateOwnProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode profile update request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.UpdateUser(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetProfileHandler returns another user's public profile. Email and
// password never leave the server here: the response is the PublicUser
// projection, not a stripped entity.
func (h *UserHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUserByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user.Public())
}

// GetOwnWishesHandler lists the acting user's wishes.
func (h *UserHandler) GetOwnWishesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	wishes, err := h.WishService.GetWishesByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishes)
}

// GetUserWishesHandler lists another user's wishes by username.
func (h *UserHandler) GetUserWishesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUserByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		respondError(w, err)
		return
	}

	wishes, err := h.WishService.GetWishesByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishes)
}

// FindUsersHandler searches users by username or email substring.
func (h *UserHandler) FindUsersHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode user search request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	profiles, err := h.Service.SearchUsers(r.Context(), req.Query)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profiles)
}
