package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	router := gin.New()
	authed := router.Group("/", AuthMiddleware())
	authed.GET("/me", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		utils.Success(c, "ok", gin.H{"id": user.ID})
	})
	authed.GET("/team", RequirePermission(models.PermManageTeam), func(c *gin.Context) {
		utils.Success(c, "ok", nil)
	})
	router.GET("/admin", AdminAuthMiddleware(), func(c *gin.Context) {
		utils.Success(c, "ok", nil)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetupTestDB(t)
	router := newProtectedRouter()
	tenant := utils.CreateTestTenant(t, "Acme")
	owner := utils.CreateTestUser(t, tenant, "owner", models.RoleOwner)
	token := utils.TestToken(t, owner)

	w := utils.PerformRequest(router, http.MethodGet, "/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = utils.PerformRequest(router, http.MethodGet, "/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = utils.PerformRequest(router, http.MethodGet, "/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		ID uint `json:"id"`
	}
	utils.DecodeData(t, w, &data)
	assert.Equal(t, owner.ID, data.ID)
}

func TestAuthMiddlewareRejectsBlacklistedToken(t *testing.T) {
	utils.SetupTestDB(t)
	router := newProtectedRouter()
	tenant := utils.CreateTestTenant(t, "Acme")
	owner := utils.CreateTestUser(t, tenant, "owner", models.RoleOwner)
	token := utils.TestToken(t, owner)

	require.NoError(t, config.DB.Create(&models.BlacklistedToken{Token: token, ExpiresAt: time.Now().Add(time.Hour)}).Error)

	w := utils.PerformRequest(router, http.MethodGet, "/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBlockedUserAndInactiveTenant(t *testing.T) {
	utils.SetupTestDB(t)
	router := newProtectedRouter()
	tenant := utils.CreateTestTenant(t, "Acme")
	blocked := utils.CreateTestUser(t, tenant, "blocked", models.RoleSales)
	require.NoError(t, config.DB.Model(blocked).Update("is_blocked", true).Error)

	w := utils.PerformRequest(router, http.MethodGet, "/me", nil, utils.TestToken(t, blocked))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), utils.ErrUserBlocked)

	suspended := utils.CreateTestTenant(t, "Suspended")
	member := utils.CreateTestUser(t, suspended, "member", models.RoleOwner)
	require.NoError(t, config.DB.Model(suspended).Update("is_active", false).Error)

	w = utils.PerformRequest(router, http.MethodGet, "/me", nil, utils.TestToken(t, member))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), utils.ErrTenantInactive)
}

func TestRequirePermission(t *testing.T) {
	utils.SetupTestDB(t)
	router := newProtectedRouter()
	tenant := utils.CreateTestTenant(t, "Acme")
	owner := utils.CreateTestUser(t, tenant, "owner", models.RoleOwner)
	manager := utils.CreateTestUser(t, tenant, "manager", models.RoleManager)

	w := utils.PerformRequest(router, http.MethodGet, "/team", nil, utils.TestToken(t, owner))
	assert.Equal(t, http.StatusOK, w.Code)

	w = utils.PerformRequest(router, http.MethodGet, "/team", nil, utils.TestToken(t, manager))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAuthMiddlewareRejectsUserTokens(t *testing.T) {
	utils.SetupTestDB(t)
	router := newProtectedRouter()
	tenant := utils.CreateTestTenant(t, "Acme")
	owner := utils.CreateTestUser(t, tenant, "owner", models.RoleOwner)

	w := utils.PerformRequest(router, http.MethodGet, "/admin", nil, utils.TestToken(t, owner))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	hash, err := utils.HashPassword(utils.TestPassword)
	require.NoError(t, err)
	admin := &models.Admin{Email: "ops@example.com", Password: hash, IsActive: true}
	require.NoError(t, config.DB.Create(admin).Error)
	token, err := utils.GenerateAdminToken(admin)
	require.NoError(t, err)

	w = utils.PerformRequest(router, http.MethodGet, "/admin", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
