package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/forkline/restaurant-admin-api/api"
	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/models"
	"github.com/forkline/restaurant-admin-api/push"
)

// PushToken struct for handling device token registration operations
type PushToken struct {
	DB databases.PushTokenDatabase
}

// RegisterPushTokenHandler registers (or overwrites) the device token for a user.
// Called on first app login after the notification permission grant, and again on
// every re-registration.
func (pt PushToken) RegisterPushTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterPushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode push token request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid push token request", http.StatusBadRequest, w, err)
		return
	}
	if !strings.HasPrefix(req.Token, push.TokenPrefix) {
		config.ErrorStatus("token is not a valid Expo push token", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err := pt.DB.Upsert(ctx, models.PushToken{
		UserID:              req.UserID,
		Token:               req.Token,
		Role:                req.Role,
		Platform:            req.Platform,
		NotificationEnabled: req.NotificationEnabled,
	})
	if err != nil {
		config.ErrorStatus("failed to register push token", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}

// UnregisterPushTokenHandler deletes the token record for a user
func (pt PushToken) UnregisterPushTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := pt.DB.Delete(ctx, userID)
	if err != nil {
		config.ErrorStatus("failed to unregister push token", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("no push token found for user", http.StatusNotFound, w, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}

// GetPushTokensHandler lists registered tokens, optionally filtered by role
func (pt PushToken) GetPushTokensHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}

	tokens, err := pt.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get push tokens", http.StatusInternalServerError, w, err)
		return
	}
	if tokens == nil {
		tokens = []models.PushToken{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tokens)
}

// SetTokenEnabledHandler toggles notification delivery for a user's token
func (pt PushToken) SetTokenEnabledHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req models.SetTokenEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := pt.DB.SetEnabled(ctx, userID, req.NotificationEnabled); err != nil {
		config.ErrorStatus("failed to update push token", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}
