package middleware

import (
	"net/http"

	"github.com/nartbayev/wishwell/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateLastActiveMiddleware stamps the acting user's last_active field on
// every authenticated request. The write is best effort.
func UpdateLastActiveMiddleware(userService *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims != nil {
				userID, err := primitive.ObjectIDFromHex(claims.UserID)
				if err == nil {
					_ = userService.TouchLastActive(r.Context(), userID)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
