package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/forkline/restaurant-admin-api/api/handlers"
	"github.com/forkline/restaurant-admin-api/databases/mocks"
	"github.com/forkline/restaurant-admin-api/models"
	"github.com/forkline/restaurant-admin-api/push"
)

type fakeResolver struct {
	res      push.Resolution
	err      error
	audience push.Audience
}

func (f *fakeResolver) Resolve(ctx context.Context, audience push.Audience) (push.Resolution, error) {
	f.audience = audience
	return f.res, f.err
}

type fakeDispatcher struct {
	summary push.Summary
	calls   int
	tokens  []string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, tokens []string, msg push.Message) push.Summary {
	f.calls++
	f.tokens = tokens
	return f.summary
}

func TestNotification_SendNotificationHandler(t *testing.T) {
	ndb := &mocks.NotificationDatabase{}
	ndb.On("InsertOne", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.Status == models.NotificationStatusSent && n.TokensSent == 2
	})).Return(nil, nil)

	resolver := &fakeResolver{res: push.Resolution{
		Tokens: []string{"ExponentPushToken[aaa]", "ExponentPushToken[bbb]"},
	}}
	dispatcher := &fakeDispatcher{summary: push.Summary{
		Success:        true,
		Message:        "delivered to 2 of 2 devices",
		TokensSent:     2,
		TotalAttempted: 2,
	}}

	n := handlers.Notification{NDB: ndb, Resolver: resolver, Dispatcher: dispatcher, Brand: "forkline"}

	body := `{"title": "Happy Hour", "message": "Half price starters until 6pm", "targetAudience": "users"}`
	req, err := http.NewRequest("POST", "/api/v1/notifications", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.SendNotificationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.SendNotificationResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.TokensSent)
	assert.Equal(t, 2, resp.TotalAttempted)
	assert.Equal(t, push.Audience("users"), resolver.audience)
	assert.Equal(t, 1, dispatcher.calls)
	ndb.AssertExpectations(t)
}

func TestNotification_SendNotificationHandlerNoTokens(t *testing.T) {
	ndb := &mocks.NotificationDatabase{}
	ndb.On("InsertOne", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.Status == models.NotificationStatusFailed
	})).Return(nil, nil)

	resolver := &fakeResolver{res: push.Resolution{ExcludedCount: 3}}
	dispatcher := &fakeDispatcher{}
	n := handlers.Notification{NDB: ndb, Resolver: resolver, Dispatcher: dispatcher, Brand: "forkline"}

	body := `{"title": "Hi", "message": "There", "targetAudience": "admins"}`
	req, _ := http.NewRequest("POST", "/api/v1/notifications", strings.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.SendNotificationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.SendNotificationResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "no push tokens found for the selected audience", resp.Message)
	assert.Equal(t, 3, resp.Excluded)
	assert.Equal(t, 0, dispatcher.calls, "dispatch must not run without tokens")
	ndb.AssertExpectations(t)
}

func TestNotification_SendNotificationHandlerResolverError(t *testing.T) {
	ndb := &mocks.NotificationDatabase{}
	resolver := &fakeResolver{err: errors.New("token store unavailable: mocked-error")}
	dispatcher := &fakeDispatcher{}
	n := handlers.Notification{NDB: ndb, Resolver: resolver, Dispatcher: dispatcher, Brand: "forkline"}

	body := `{"title": "Hi", "message": "There", "targetAudience": "all"}`
	req, _ := http.NewRequest("POST", "/api/v1/notifications", strings.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.SendNotificationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "failed to resolve notification audience", resp.Response.Message)
	assert.Equal(t, 0, dispatcher.calls)
	ndb.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestNotification_SendNotificationHandlerInvalidAudience(t *testing.T) {
	n := handlers.Notification{Resolver: &fakeResolver{}, Dispatcher: &fakeDispatcher{}}

	body := `{"title": "Hi", "message": "There", "targetAudience": "everyone"}`
	req, _ := http.NewRequest("POST", "/api/v1/notifications", strings.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.SendNotificationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotification_SendNotificationHandlerMissingTitle(t *testing.T) {
	n := handlers.Notification{Resolver: &fakeResolver{}, Dispatcher: &fakeDispatcher{}}

	body := `{"message": "There", "targetAudience": "all"}`
	req, _ := http.NewRequest("POST", "/api/v1/notifications", strings.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.SendNotificationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotification_ScheduleNotificationHandler(t *testing.T) {
	ndb := &mocks.NotificationDatabase{}
	ior := &mocks.InsertOneResultHelper{}
	ior.On("Decode").Return("651d2e8f9b1e8a3c4d5e6f70")
	ndb.On("InsertOne", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.Status == models.NotificationStatusScheduled && n.SendAt != nil
	})).Return(ior, nil)

	n := handlers.Notification{NDB: ndb, Resolver: &fakeResolver{}, Dispatcher: &fakeDispatcher{}, Brand: "forkline"}

	sendAt := primitive.NewDateTimeFromTime(time.Now().Add(time.Hour))
	payload, _ := json.Marshal(map[string]interface{}{
		"title":          "Weekend Brunch",
		"message":        "Bottomless pancakes from 10am",
		"targetAudience": "all",
		"sendAt":         sendAt,
	})
	req, _ := http.NewRequest("POST", "/api/v1/notifications/schedule", strings.NewReader(string(payload)))

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.ScheduleNotificationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "651d2e8f9b1e8a3c4d5e6f70")
	ndb.AssertExpectations(t)
}

func TestNotification_ScheduleNotificationHandlerPastSendAt(t *testing.T) {
	ndb := &mocks.NotificationDatabase{}
	n := handlers.Notification{NDB: ndb, Resolver: &fakeResolver{}, Dispatcher: &fakeDispatcher{}}

	sendAt := primitive.NewDateTimeFromTime(time.Now().Add(-time.Hour))
	payload, _ := json.Marshal(map[string]interface{}{
		"title":          "Too Late",
		"message":        "This already happened",
		"targetAudience": "all",
		"sendAt":         sendAt,
	})
	req, _ := http.NewRequest("POST", "/api/v1/notifications/schedule", strings.NewReader(string(payload)))

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.ScheduleNotificationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	ndb.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestNotification_GetNotificationsHandler(t *testing.T) {
	ndb := &mocks.NotificationDatabase{}
	rows := []models.Notification{
		{Title: "First", Status: models.NotificationStatusSent},
		{Title: "Second", Status: models.NotificationStatusFailed},
	}
	ndb.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)
	ndb.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(42), nil)

	n := handlers.Notification{NDB: ndb, Resolver: &fakeResolver{}, Dispatcher: &fakeDispatcher{}, Brand: "forkline"}

	req, _ := http.NewRequest("GET", "/api/v1/notifications?page=2&limit=20", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(n.GetNotificationsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.PaginatedNotificationsResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 42, resp.Pagination.TotalItems)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
}

func TestNotification_GetNotificationsHandlerDBError(t *testing.T) {
	ndb := &mocks.NotificationDatabase{}
	ndb.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	n := handlers.Notification{NDB: ndb, Resolver: &fakeResolver{}, Dispatcher: &fakeDispatcher{}}

	req, _ := http.NewRequest("GET", "/api/v1/notifications", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(n.GetNotificationsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "failed to get notification history", resp.Response.Message)
}
