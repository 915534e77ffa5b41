package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/forkline/restaurant-admin-api/api"
	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/models"
)

// Loyalty struct for handling loyalty program config and POS order-sync operations
type Loyalty struct {
	DB      databases.LoyaltyDatabase
	Brand   string
	SyncURL string
	// HTTPClient is overridable in tests; nil means a default client
	HTTPClient *http.Client
}

// GetConfigHandler returns the brand's loyalty program configuration
func (l Loyalty) GetConfigHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cfg, err := l.DB.FindConfig(ctx, l.Brand)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			config.ErrorStatus("loyalty config not set for brand", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get loyalty config", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(cfg)
}

// UpdateConfigHandler upserts the brand's loyalty program configuration
func (l Loyalty) UpdateConfigHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLoyaltyConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode loyalty config", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid loyalty config", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := l.DB.UpsertConfig(ctx, l.Brand, req); err != nil {
		config.ErrorStatus("failed to update loyalty config", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}

// TriggerSyncHandler invokes the external points-award function for an order window
// and records the run. The order matching itself happens in the external function;
// this endpoint only orchestrates and keeps history.
func (l Loyalty) TriggerSyncHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoyaltySyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode sync request", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid sync request", http.StatusBadRequest, w, err)
		return
	}
	if l.SyncURL == "" {
		config.ErrorStatus("loyalty sync is not configured", http.StatusServiceUnavailable, w, nil)
		return
	}

	runID := uuid.New().String()
	result, err := l.callSyncFunction(r, req)

	sync := models.LoyaltySync{
		RunID:       runID,
		Brand:       l.Brand,
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
	}
	if err != nil {
		sync.Success = false
		sync.Detail = err.Error()
	} else {
		sync.Success = true
		sync.OrdersProcessed = result.OrdersProcessed
		sync.PointsAwarded = result.PointsAwarded
		sync.Detail = result.Detail
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if _, dbErr := l.DB.InsertSync(ctx, sync); dbErr != nil {
		zap.S().Errorw("failed to record loyalty sync run", "runId", runID, "error", dbErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":         sync.Success,
		"runId":           runID,
		"ordersProcessed": sync.OrdersProcessed,
		"pointsAwarded":   sync.PointsAwarded,
		"detail":          sync.Detail,
	})
}

func (l Loyalty) callSyncFunction(r *http.Request, req models.LoyaltySyncRequest) (*models.LoyaltySyncResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"brand":       l.Brand,
		"windowStart": req.WindowStart.Time().UTC().Format(time.RFC3339),
		"windowEnd":   req.WindowEnd.Time().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sync request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, l.SyncURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create sync request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := l.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("points-award function unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("points-award function returned status %d", resp.StatusCode)
	}

	var result models.LoyaltySyncResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode points-award response: %w", err)
	}
	return &result, nil
}

// GetSyncHistoryHandler returns recent POS sync runs, newest first
func (l Loyalty) GetSyncHistoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	syncs, err := l.DB.FindSyncs(ctx, l.Brand,
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50))
	if err != nil {
		config.ErrorStatus("failed to get sync history", http.StatusInternalServerError, w, err)
		return
	}
	if syncs == nil {
		syncs = []models.LoyaltySync{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(syncs)
}
