package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/auth"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/user"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/middleware"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test_secret")

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.DB = db

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.RedisClient = nil })

	r := gin.New()
	v1 := r.Group("/api/v1")
	auth.RegisterRoutes(v1)
	authorized := v1.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	user.RegisterRoutes(authorized)
	return r
}

func postJSON(r *gin.Engine, path, token string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/api/v1/auth/register", "", auth.RegisterInput{Username: "alice", Password: "password123"})
	require.Equal(t, http.StatusCreated, w.Code)
	var registered user.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "alice", registered.Username)
	assert.NotEmpty(t, registered.Token)

	w = postJSON(r, "/api/v1/auth/register", "", auth.RegisterInput{Username: "alice", Password: "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/api/v1/auth/login", "", auth.LoginInput{Username: "alice", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/api/v1/auth/login", "", auth.LoginInput{Username: "alice", Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var loggedIn user.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	require.NotNil(t, loggedIn.ExpiresAt)

	w = getWithToken(r, "/api/v1/auth/user", loggedIn.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var me user.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, registered.ID, me.ID)
	assert.Empty(t, me.Token)

	w = postJSON(r, "/api/v1/auth/logout", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = getWithToken(r, "/api/v1/auth/user", loggedIn.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token has been revoked"}`, w.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/api/v1/auth/register", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Field 'password' is required", resp["error"])

	w = postJSON(r, "/api/v1/auth/register", "", auth.RegisterInput{Username: "alice", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
