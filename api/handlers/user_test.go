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

func TestUser_GetUsersHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		users := args.Get(0).(*[]models.User)
		*users = []models.User{
			{Name: "Dana", Email: "dana@forkline.app", Role: models.RoleAdmin},
		}
	}).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything).Return(cursor, nil)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	req, err := http.NewRequest("GET", "/api/v1/users?role=admin", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.GetUsersHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var users []models.User
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	assert.Len(t, users, 1)
	assert.Equal(t, "Dana", users[0].Name)
}

func TestUser_GetUserByIDHandlerNotFound(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	id := primitive.NewObjectID().Hex()
	req, _ := http.NewRequest("GET", "/api/v1/users/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"userId": id})

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.GetUserByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUser_UpdateUserRoleHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	ptdb := &mocks.PushTokenDatabase{}

	id := primitive.NewObjectID()
	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	db.On("Collection", "users").Return(conn)
	ptdb.On("SetRoleForUser", mock.Anything, id.Hex(), models.RoleAdmin).Return(nil)

	u := handlers.User{DB: databases.NewUserDatabase(db), PTDB: ptdb}

	req, _ := http.NewRequest("PUT", "/api/v1/users/"+id.Hex()+"/role", strings.NewReader(`{"role": "admin"}`))
	req = mux.SetURLVars(req, map[string]string{"userId": id.Hex()})

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateUserRoleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success": true}`, rr.Body.String())
	ptdb.AssertExpectations(t)
}

func TestUser_UpdateUserRoleHandlerTokenSyncFailureIsNotFatal(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	ptdb := &mocks.PushTokenDatabase{}

	id := primitive.NewObjectID()
	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	db.On("Collection", "users").Return(conn)
	ptdb.On("SetRoleForUser", mock.Anything, id.Hex(), models.RoleUser).Return(errors.New("mocked-error"))

	u := handlers.User{DB: databases.NewUserDatabase(db), PTDB: ptdb}

	req, _ := http.NewRequest("PUT", "/api/v1/users/"+id.Hex()+"/role", strings.NewReader(`{"role": "user"}`))
	req = mux.SetURLVars(req, map[string]string{"userId": id.Hex()})

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateUserRoleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUser_UpdateUserRoleHandlerUnknownRole(t *testing.T) {
	u := handlers.User{}

	id := primitive.NewObjectID().Hex()
	req, _ := http.NewRequest("PUT", "/api/v1/users/"+id+"/role", strings.NewReader(`{"role": "owner"}`))
	req = mux.SetURLVars(req, map[string]string{"userId": id})

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateUserRoleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
