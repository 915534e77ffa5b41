package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/forkline/restaurant-admin-api/api/handlers"
	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/models"
)

func TestApp_HealthCheck(t *testing.T) {
	a := handlers.App{Config: config.Config{Brand: "forkline"}}
	router := a.New()

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.HealthCheckResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Alive)
}

func TestApp_RoutesRegistered(t *testing.T) {
	a := handlers.App{Config: config.Config{Brand: "forkline"}}
	router := a.New()

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/notifications"},
		{"GET", "/api/v1/notifications"},
		{"POST", "/api/v1/notifications/schedule"},
		{"POST", "/api/v1/push-tokens"},
		{"DELETE", "/api/v1/push-tokens/user-1"},
		{"GET", "/api/v1/events"},
		{"GET", "/api/v1/rewards"},
		{"GET", "/api/v1/loyalty/config"},
		{"POST", "/api/v1/loyalty/sync"},
		{"GET", "/api/v1/users"},
		{"POST", "/api/v1/uploads/signature"},
	}

	for _, route := range routes {
		req, err := http.NewRequest(route.method, route.path, nil)
		if err != nil {
			t.Fatal(err)
		}
		match := &mux.RouteMatch{}
		assert.True(t, router.Match(req, match), "expected route %s %s to be registered", route.method, route.path)
	}
}
