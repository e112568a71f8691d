package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appidentity "github.com/mysticum/wms/internal/application/identity"
	"github.com/mysticum/wms/internal/domain/identity"
	"github.com/mysticum/wms/internal/infrastructure/auth"
	"github.com/mysticum/wms/internal/infrastructure/config"
	"github.com/mysticum/wms/internal/infrastructure/persistence"
	"github.com/mysticum/wms/internal/infrastructure/persistence/models"
	"github.com/mysticum/wms/internal/interfaces/http/handler"
	"github.com/mysticum/wms/internal/interfaces/http/middleware"
)

type authTestEnv struct {
	engine     *gin.Engine
	jwtService *auth.JWTService
	users      *persistence.GormUserRepository
	hasher     *auth.PasswordHasher
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "wms-test",
	})
	hasher := auth.NewPasswordHasher(4)
	users := persistence.NewGormUserRepository(db)
	authService := appidentity.NewAuthService(users, jwtService, hasher, zap.NewNop())

	engine := gin.New()
	engine.Use(middleware.JWTAuth(jwtService))
	api := engine.Group("/api/v1")
	handler.NewAuthHandler(authService).RegisterRoutes(api)

	return &authTestEnv{engine: engine, jwtService: jwtService, users: users, hasher: hasher}
}

func (env *authTestEnv) seedUser(t *testing.T, login, password string, role identity.Role) *identity.User {
	t.Helper()
	hash, err := env.hasher.Hash(password)
	require.NoError(t, err)
	user, err := identity.NewUser(login, hash, role, uuid.New())
	require.NoError(t, err)
	require.NoError(t, env.users.Save(context.Background(), user))
	return user
}

func (env *authTestEnv) post(path string, body any, token string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	env := newAuthTestEnv(t)
	env.seedUser(t, "worker1", "s3cret-pass", identity.RoleWorker)

	w := env.post("/api/v1/auth/login", gin.H{"login": "worker1", "password": "s3cret-pass"}, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			User         struct {
				Login string `json:"login"`
				Role  string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.NotEmpty(t, resp.Data.RefreshToken)
	assert.Equal(t, "worker1", resp.Data.User.Login)
	assert.Equal(t, "PRC", resp.Data.User.Role)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := newAuthTestEnv(t)
	env.seedUser(t, "worker1", "s3cret-pass", identity.RoleWorker)

	w := env.post("/api/v1/auth/login", gin.H{"login": "worker1", "password": "wrong"}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuthHandler_RefreshRotatesTokens(t *testing.T) {
	env := newAuthTestEnv(t)
	env.seedUser(t, "worker1", "s3cret-pass", identity.RoleWorker)

	login := env.post("/api/v1/auth/login", gin.H{"login": "worker1", "password": "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, login.Code)

	var loginResp struct {
		Data struct {
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

	w := env.post("/api/v1/auth/refresh", gin.H{"refresh_token": loginResp.Data.RefreshToken}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestAuthHandler_RegisterRequiresManagerialRole(t *testing.T) {
	env := newAuthTestEnv(t)
	worker := env.seedUser(t, "worker1", "s3cret-pass", identity.RoleWorker)
	manager := env.seedUser(t, "manager1", "s3cret-pass", identity.RoleManager)

	body := gin.H{
		"login":        "newhire",
		"password":     "password123",
		"role":         "PRC",
		"warehouse_id": worker.WarehouseID,
	}

	workerToken := tokenFor(t, env.jwtService, worker)
	w := env.post("/api/v1/auth/register", body, workerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	managerToken := tokenFor(t, env.jwtService, manager)
	w = env.post("/api/v1/auth/register", body, managerToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate login conflicts.
	w = env.post("/api/v1/auth/register", body, managerToken)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	env := newAuthTestEnv(t)
	user := env.seedUser(t, "worker1", "s3cret-pass", identity.RoleWorker)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, env.jwtService, user))
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, user *identity.User) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Login:       user.Login,
		Role:        string(user.Role),
		WarehouseID: user.WarehouseID,
	})
	require.NoError(t, err)
	return pair.AccessToken
}
