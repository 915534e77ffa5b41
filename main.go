package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/forkline/restaurant-admin-api/api/handlers"
	"github.com/forkline/restaurant-admin-api/api/scheduler"
	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/push"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	err := a.Initialize() // initialize database and router
	if err != nil {
		log.Fatal(err)
	}

	resolver := push.NewResolver(databases.NewPushTokenDatabase(a.DBHelper()))
	dispatcher := push.NewDispatcher(push.Config{
		GatewayURL:  a.Config.ExpoPushURL,
		AccessToken: a.Config.ExpoAccessToken,
	})
	sched := scheduler.NewScheduler(
		databases.NewNotificationDatabase(a.DBHelper()),
		resolver,
		dispatcher,
		a.Config,
	)
	sched.Start()
	defer sched.Stop()

	zap.S().Infow("restaurant-admin-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
