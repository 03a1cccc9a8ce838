package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestPassword is the plain-text password of users made by CreateTestUser
const TestPassword = "Secret123"

// SetupTestDB points config.DB at a fresh in-memory sqlite database
func SetupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", Env: "test", SessionSecret: "test-session"}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := config.OpenDatabase("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	config.DB = db
}

// CreateTestTenant creates an active tenant
func CreateTestTenant(t *testing.T, name string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{Name: name, Slug: Slugify(name), IsActive: true}
	require.NoError(t, config.DB.Create(tenant).Error)
	return tenant
}

// CreateTestUser creates a user with the given role and TestPassword
func CreateTestUser(t *testing.T, tenant *models.Tenant, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := HashPassword(TestPassword)
	require.NoError(t, err)
	user := &models.User{
		TenantID:  tenant.ID,
		Username:  username,
		Email:     username + "@example.com",
		Password:  hash,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		Role:      role,
	}
	require.NoError(t, config.DB.Create(user).Error)
	return user
}

// TestToken issues a bearer token for user
func TestToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := GenerateToken(user)
	require.NoError(t, err)
	return token
}

// PerformRequest sends a JSON request through router
func PerformRequest(router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeData unmarshals the data field of a standard response into out
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, out), string(resp.Data))
}
