package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nartbayev/wishwell/internal/apperr"
	log "github.com/sirupsen/logrus"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.WithError(err).Error("Failed to encode response")
		}
	}
}

// respondError maps a service error to its HTTP status. Internal errors are
// logged and masked; taxonomy errors carry their message to the caller.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
