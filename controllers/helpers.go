package controllers

import (
	"strconv"

	"github.com/Govind-619/BillSphere/middleware"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

// currentUser reads the authenticated user, writing a 401 when it is missing
func currentUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	return user, true
}

// parseID reads a numeric path parameter, writing a 400 when it is invalid
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.LogDebug("Invalid %s parameter: %q", name, c.Param(name))
		utils.BadRequest(c, "Invalid "+name, "must be a positive number")
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the request body, writing a 400 with field errors on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogDebug("Invalid request body: %v", err)
		utils.BadRequest(c, "Invalid input", utils.BindingErrors(err))
		return false
	}
	return true
}
