package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/forkline/restaurant-admin-api/api/handlers"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/databases/mocks"
	"github.com/forkline/restaurant-admin-api/models"
)

func TestReward_GetRewardsHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		rewards := args.Get(0).(*[]models.Reward)
		*rewards = []models.Reward{
			{Brand: "forkline", Name: "Free Dessert", PointsCost: 200, IsActive: true},
		}
	}).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	req, err := http.NewRequest("GET", "/api/v1/rewards", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.GetRewardsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var rewards []models.Reward
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rewards))
	assert.Len(t, rewards, 1)
	assert.Equal(t, "Free Dessert", rewards[0].Name)
}

func TestReward_GetRewardsHandlerDBError(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	req, _ := http.NewRequest("GET", "/api/v1/rewards", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.GetRewardsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "failed to get rewards", resp.Response.Message)
}

func TestReward_GetRewardByIDHandlerInvalidID(t *testing.T) {
	rw := handlers.Reward{Brand: "forkline"}

	req, _ := http.NewRequest("GET", "/api/v1/rewards/not-a-hex-id", nil)
	req = mux.SetURLVars(req, map[string]string{"rewardId": "not-a-hex-id"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.GetRewardByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReward_GetRewardByIDHandlerNotFound(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	id := primitive.NewObjectID().Hex()
	req, _ := http.NewRequest("GET", "/api/v1/rewards/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"rewardId": id})

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.GetRewardByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReward_CreateRewardHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	insertResult.On("Decode").Return("651d2e8f9b1e8a3c4d5e6f72")
	conn.On("InsertOne", mock.Anything, mock.MatchedBy(func(r models.Reward) bool {
		return r.Brand == "forkline" && r.Name == "Free Dessert" && r.PointsCost == 200
	})).Return(insertResult, nil)
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	body := `{"name": "Free Dessert", "description": "Any dessert on the menu", "pointsCost": 200, "isActive": true}`
	req, _ := http.NewRequest("POST", "/api/v1/rewards", strings.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.CreateRewardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "651d2e8f9b1e8a3c4d5e6f72")
}

func TestReward_CreateRewardHandlerMissingPointsCost(t *testing.T) {
	rw := handlers.Reward{Brand: "forkline"}

	body := `{"name": "Free Dessert", "description": "Any dessert on the menu"}`
	req, _ := http.NewRequest("POST", "/api/v1/rewards", strings.NewReader(body))

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.CreateRewardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReward_UpdateRewardHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	id := primitive.NewObjectID().Hex()
	req, _ := http.NewRequest("PUT", "/api/v1/rewards/"+id, strings.NewReader(`{"pointsCost": 150}`))
	req = mux.SetURLVars(req, map[string]string{"rewardId": id})

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.UpdateRewardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success": true}`, rr.Body.String())
}

func TestReward_UpdateRewardHandlerNotFound(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	id := primitive.NewObjectID().Hex()
	req, _ := http.NewRequest("PUT", "/api/v1/rewards/"+id, strings.NewReader(`{"pointsCost": 150}`))
	req = mux.SetURLVars(req, map[string]string{"rewardId": id})

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.UpdateRewardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReward_DeleteRewardHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	id := primitive.NewObjectID().Hex()
	req, _ := http.NewRequest("DELETE", "/api/v1/rewards/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"rewardId": id})

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.DeleteRewardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success": true}`, rr.Body.String())
}

func TestReward_DeleteRewardHandlerNotFound(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.On("Collection", "rewards").Return(conn)

	rw := handlers.Reward{DB: databases.NewRewardDatabase(db), Brand: "forkline"}

	id := primitive.NewObjectID().Hex()
	req, _ := http.NewRequest("DELETE", "/api/v1/rewards/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"rewardId": id})

	rr := httptest.NewRecorder()
	http.HandlerFunc(rw.DeleteRewardHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
