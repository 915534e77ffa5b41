// Package docs Restaurant Admin API.
//
// Documentation of the Forkline restaurant admin API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://api.forkline.app
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/forkline/restaurant-admin-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/notifications notifications sendNotification
// Sends a push notification to the selected audience.
// responses:
//   200: sendNotificationResponse

// Summary of the dispatch attempt, including how many devices were reached.
// swagger:response sendNotificationResponse
type sendNotificationResponseWrapper struct {
	// in:body
	Body models.SendNotificationResponse
}

// swagger:route GET /api/v1/notifications notifications notificationHistory
// Lists the paginated notification history, newest first.
// responses:
//   200: notificationHistoryResponse

// A page of notification history rows with pagination metadata.
// swagger:response notificationHistoryResponse
type notificationHistoryResponseWrapper struct {
	// in:body
	Body models.PaginatedNotificationsResponse
}

// swagger:route GET /api/v1/events events listEvents
// Lists the brand's events, soonest first.
// responses:
//   200: listEventsResponse

// The brand's events; inactive events are included only when requested.
// swagger:response listEventsResponse
type listEventsResponseWrapper struct {
	// in:body
	Body []models.Event
}

// swagger:route GET /api/v1/rewards rewards listRewards
// Lists the brand's reward catalog in display order.
// responses:
//   200: listRewardsResponse

// The brand's reward catalog.
// swagger:response listRewardsResponse
type listRewardsResponseWrapper struct {
	// in:body
	Body []models.Reward
}

// swagger:route GET /api/v1/loyalty/config loyalty loyaltyConfig
// Gets the brand's loyalty program configuration.
// responses:
//   200: loyaltyConfigResponse

// The loyalty program configuration for the brand.
// swagger:response loyaltyConfigResponse
type loyaltyConfigResponseWrapper struct {
	// in:body
	Body models.LoyaltyConfig
}
