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

// Event struct for handling restaurant event operations
type Event struct {
	DB    databases.EventDatabase
	Brand string
}

// GetEventsHandler returns events for the brand, soonest first. Pass
// ?includeInactive=true to include unpublished events.
func (e Event) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{"brand": e.Brand}
	if r.URL.Query().Get("includeInactive") != "true" {
		filter["isActive"] = true
	}

	events, err := e.DB.Find(ctx, filter, options.Find().SetSort(bson.M{"startsAt": 1}))
	if err != nil {
		config.ErrorStatus("failed to get events", http.StatusInternalServerError, w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(events)
}

// GetEventByIDHandler returns a single event
func (e Event) GetEventByIDHandler(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	id, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		config.ErrorStatus("invalid event ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	event, err := e.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to get event", http.StatusNotFound, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(event)
}

// CreateEventHandler creates a new event
func (e Event) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode event request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid event request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	now := primitive.NewDateTimeFromTime(time.Now())
	result, err := e.DB.InsertOne(ctx, models.Event{
		Brand:       e.Brand,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		config.ErrorStatus("failed to create event", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"id":      result.Decode(),
	})
}

// UpdateEventHandler applies a partial update to an event
func (e Event) UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	id, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		config.ErrorStatus("invalid event ID", http.StatusBadRequest, w, err)
		return
	}

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode event request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid event request", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}
	if req.StartsAt != nil {
		set["startsAt"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		set["endsAt"] = *req.EndsAt
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	result, err := e.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update event", http.StatusInternalServerError, w, err)
		return
	}
	if result.MatchedCount == 0 {
		config.ErrorStatus("event not found", http.StatusNotFound, w, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}

// DeleteEventHandler removes an event
func (e Event) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	id, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		config.ErrorStatus("invalid event ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := e.DB.DeleteByID(ctx, id)
	if err != nil {
		config.ErrorStatus("failed to delete event", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("event not found", http.StatusNotFound, w, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}
