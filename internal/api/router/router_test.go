package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agency-hub/internal/adapter/notification"
	"agency-hub/internal/adapter/storage"
	"agency-hub/internal/model"
	"agency-hub/internal/pkg/config"
	"agency-hub/pkg/constants"
	"agency-hub/pkg/utils"
)

type envelope struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldError `json:"errors"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug", AllowOrigins: []string{"*"}, MaxUploadSize: 1 << 20},
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				AccessSecret:       "access-secret",
				RefreshSecret:      "refresh-secret",
				AccessTokenExpire:  900,
				RefreshTokenExpire: 3600,
				Issuer:             "agency-hub-test",
			},
			Local: config.LocalConfig{Enabled: true},
		},
		Storage: config.StorageConfig{PresignExpire: 3600},
	}

	notifier := notification.New(config.NotificationConfig{}, zap.NewNop())
	engine := Setup(cfg, db, &storage.MockObjectStore{}, notifier, zap.NewNop())

	return &testServer{t: t, db: db, engine: engine}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, *envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.HeaderBearerPrefix+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	env := &envelope{}
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), env))
	}
	return w.Code, env
}

func (s *testServer) register(email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "secret123", "name": "Test User",
	})
	require.Equal(s.t, http.StatusCreated, code)

	var tokens struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, code)

	var tokens struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken
}

func dataID(t *testing.T, env *envelope) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotEmpty(t, v.ID)
	return v.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register("dev@example.com")

	code, env := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Contains(t, string(env.Data), `"email":"dev@example.com"`)
	assert.Contains(t, string(env.Data), `"role":"member"`)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "dev@example.com", "password": "secret123", "name": "Again",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "dev@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", env.Message)

	code, _ = s.do(http.MethodGet, "/api/v1/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/clients", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.register("dev@example.com")

	code, env := s.do(http.MethodPost, "/api/v1/invoices", token, gin.H{})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, env.Code)
	fields := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "number")
	assert.Contains(t, fields, "clientId")

	code, env = s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": "nope", "password": "1", "name": "x"})
	require.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, env.Errors)
}

func TestProjectProgressFollowsTasks(t *testing.T) {
	s := newTestServer(t)
	token := s.register("dev@example.com")

	code, env := s.do(http.MethodPost, "/api/v1/clients", token, gin.H{"name": "Acme", "email": "acme@example.com"})
	require.Equal(t, http.StatusCreated, code)
	clientID := dataID(t, env)

	code, env = s.do(http.MethodPost, "/api/v1/projects", token, gin.H{"name": "Website", "clientId": clientID})
	require.Equal(t, http.StatusCreated, code)
	projectID := dataID(t, env)

	code, _ = s.do(http.MethodPost, "/api/v1/projects/"+projectID+"/tasks", token, gin.H{"title": "Design", "status": "done"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/v1/projects/"+projectID+"/tasks", token, gin.H{"title": "Build"})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet, "/api/v1/projects/"+projectID, token, nil)
	require.Equal(t, http.StatusOK, code)
	var project struct {
		Progress int `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &project))
	assert.Equal(t, 50, project.Progress)

	// deletes are admin only
	code, _ = s.do(http.MethodDelete, "/api/v1/projects/"+projectID, token, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestClientRoleIsConfinedToPortal(t *testing.T) {
	s := newTestServer(t)
	s.register("buyer@example.com")
	require.NoError(t, s.db.Model(&model.User{}).
		Where("email = ?", "buyer@example.com").
		Update("role", constants.RoleClient).Error)

	token := s.login("buyer@example.com")

	code, _ := s.do(http.MethodGet, "/api/v1/clients", token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/v1/invoices", token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// no linked client yet
	code, env := s.do(http.MethodGet, "/api/v1/portal/projects", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "access denied", env.Message)
}
