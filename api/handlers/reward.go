package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forkline/restaurant-admin-api/api"
	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/models"
)

// Reward struct for handling reward catalog operations
type Reward struct {
	DB    databases.RewardDatabase
	Brand string
}

// GetRewardsHandler returns the reward catalog ordered for display
func (rw Reward) GetRewardsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{"brand": rw.Brand}
	if r.URL.Query().Get("includeInactive") != "true" {
		filter["isActive"] = true
	}

	rewards, err := rw.DB.Find(ctx, filter, options.Find().SetSort(bson.M{"sortOrder": 1}))
	if err != nil {
		config.ErrorStatus("failed to get rewards", http.StatusInternalServerError, w, err)
		return
	}
	if rewards == nil {
		rewards = []models.Reward{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rewards)
}

// GetRewardByIDHandler returns a single reward
func (rw Reward) GetRewardByIDHandler(w http.ResponseWriter, r *http.Request) {
	rewardID := mux.Vars(r)["rewardId"]
	id, err := primitive.ObjectIDFromHex(rewardID)
	if err != nil {
		config.ErrorStatus("invalid reward ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reward, err := rw.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get reward", http.StatusNotFound, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(reward)
}

// CreateRewardHandler adds a reward to the catalog
func (rw Reward) CreateRewardHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode reward request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid reward request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	now := primitive.NewDateTimeFromTime(time.Now())
	result, err := rw.DB.InsertOne(ctx, models.Reward{
		Brand:       rw.Brand,
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		config.ErrorStatus("failed to create reward", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"id":      result.Decode(),
	})
}

// UpdateRewardHandler applies a partial update to a reward
func (rw Reward) UpdateRewardHandler(w http.ResponseWriter, r *http.Request) {
	rewardID := mux.Vars(r)["rewardId"]
	id, err := primitive.ObjectIDFromHex(rewardID)
	if err != nil {
		config.ErrorStatus("invalid reward ID", http.StatusBadRequest, w, err)
		return
	}

	var req models.UpdateRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode reward request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid reward request", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.PointsCost != nil {
		set["pointsCost"] = *req.PointsCost
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if req.SortOrder != nil {
		set["sortOrder"] = *req.SortOrder
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	result, err := rw.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update reward", http.StatusInternalServerError, w, err)
		return
	}
	if result.MatchedCount == 0 {
		config.ErrorStatus("reward not found", http.StatusNotFound, w, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}

// DeleteRewardHandler removes a reward from the catalog
func (rw Reward) DeleteRewardHandler(w http.ResponseWriter, r *http.Request) {
	rewardID := mux.Vars(r)["rewardId"]
	id, err := primitive.ObjectIDFromHex(rewardID)
	if err != nil {
		config.ErrorStatus("invalid reward ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := rw.DB.DeleteByID(ctx, id)
	if err != nil {
		config.ErrorStatus("failed to delete reward", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("reward not found", http.StatusNotFound, w, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}
