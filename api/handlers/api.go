package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/forkline/restaurant-admin-api/api"
	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/models"
	"github.com/forkline/restaurant-admin-api/push"
)

// validate checks the request DTO struct tags
var validate = validator.New()

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	resolver := push.NewResolver(databases.NewPushTokenDatabase(a.dbHelper))
	dispatcher := push.NewDispatcher(push.Config{
		GatewayURL:  a.Config.ExpoPushURL,
		AccessToken: a.Config.ExpoAccessToken,
	})

	n := Notification{
		NDB:        databases.NewNotificationDatabase(a.dbHelper),
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Brand:      a.Config.Brand,
	}
	pt := PushToken{DB: databases.NewPushTokenDatabase(a.dbHelper)}
	e := Event{DB: databases.NewEventDatabase(a.dbHelper), Brand: a.Config.Brand}
	rw := Reward{DB: databases.NewRewardDatabase(a.dbHelper), Brand: a.Config.Brand}
	l := Loyalty{
		DB:      databases.NewLoyaltyDatabase(a.dbHelper),
		Brand:   a.Config.Brand,
		SyncURL: a.Config.LoyaltySyncURL,
	}
	u := User{DB: databases.NewUserDatabase(a.dbHelper), PTDB: databases.NewPushTokenDatabase(a.dbHelper)}
	uploads := UploadHandler{
		UploadPreset: a.Config.CloudinaryUploadPreset,
		APISecret:    a.Config.CloudinaryAPISecret,
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.RequestLogger)
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/notifications", http.HandlerFunc(n.SendNotificationHandler)).Methods("POST")
	apiCreate.Handle("/notifications", http.HandlerFunc(n.GetNotificationsHandler)).Methods("GET")
	apiCreate.Handle("/notifications/schedule", http.HandlerFunc(n.ScheduleNotificationHandler)).Methods("POST")

	apiCreate.Handle("/push-tokens", http.HandlerFunc(pt.RegisterPushTokenHandler)).Methods("POST")
	apiCreate.Handle("/push-tokens", http.HandlerFunc(pt.GetPushTokensHandler)).Methods("GET")
	apiCreate.Handle("/push-tokens/{userId}", http.HandlerFunc(pt.UnregisterPushTokenHandler)).Methods("DELETE")
	apiCreate.Handle("/push-tokens/{userId}/enabled", http.HandlerFunc(pt.SetTokenEnabledHandler)).Methods("PUT")

	apiCreate.Handle("/events", http.HandlerFunc(e.GetEventsHandler)).Methods("GET")
	apiCreate.Handle("/events", http.HandlerFunc(e.CreateEventHandler)).Methods("POST")
	apiCreate.Handle("/events/{eventId}", http.HandlerFunc(e.GetEventByIDHandler)).Methods("GET")
	apiCreate.Handle("/events/{eventId}", http.HandlerFunc(e.UpdateEventHandler)).Methods("PUT")
	apiCreate.Handle("/events/{eventId}", http.HandlerFunc(e.DeleteEventHandler)).Methods("DELETE")

	apiCreate.Handle("/rewards", http.HandlerFunc(rw.GetRewardsHandler)).Methods("GET")
	apiCreate.Handle("/rewards", http.HandlerFunc(rw.CreateRewardHandler)).Methods("POST")
	apiCreate.Handle("/rewards/{rewardId}", http.HandlerFunc(rw.GetRewardByIDHandler)).Methods("GET")
	apiCreate.Handle("/rewards/{rewardId}", http.HandlerFunc(rw.UpdateRewardHandler)).Methods("PUT")
	apiCreate.Handle("/rewards/{rewardId}", http.HandlerFunc(rw.DeleteRewardHandler)).Methods("DELETE")

	apiCreate.Handle("/loyalty/config", http.HandlerFunc(l.GetConfigHandler)).Methods("GET")
	apiCreate.Handle("/loyalty/config", http.HandlerFunc(l.UpdateConfigHandler)).Methods("PUT")
	apiCreate.Handle("/loyalty/sync", http.HandlerFunc(l.TriggerSyncHandler)).Methods("POST")
	apiCreate.Handle("/loyalty/syncs", http.HandlerFunc(l.GetSyncHistoryHandler)).Methods("GET")

	apiCreate.Handle("/users", http.HandlerFunc(u.GetUsersHandler)).Methods("GET")
	apiCreate.Handle("/users/{userId}", http.HandlerFunc(u.GetUserByIDHandler)).Methods("GET")
	apiCreate.Handle("/users/{userId}/role", http.HandlerFunc(u.UpdateUserRoleHandler)).Methods("PUT")

	apiCreate.Handle("/uploads/signature", http.HandlerFunc(uploads.GenerateSignature)).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("restaurant-admin-api has connected to the database")

	// initialize api router
	a.initializeRoutes()
	return nil
}

// DBHelper exposes the database connection for wiring the scheduler in main
func (a *App) DBHelper() databases.DatabaseHelper {
	return a.dbHelper
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
