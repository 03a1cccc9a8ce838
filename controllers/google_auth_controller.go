package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// GoogleLogin redirects to the Google consent screen
func GoogleLogin(c *gin.Context) {
	utils.LogInfo("GoogleLogin called")
	if !config.GoogleOAuthEnabled() {
		utils.NotFound(c, "Google sign-in is not configured")
		return
	}
	state, err := utils.NewOAuthState(c)
	if err != nil {
		utils.InternalServerError(c, "Failed to start Google sign-in", err.Error())
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}

func fetchGoogleUser(c *gin.Context, accessToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var info GoogleUserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GoogleCallback signs in an existing user with a verified Google account.
// Accounts are linked by email on first use; new workspaces still go through RegisterUser.
func GoogleCallback(c *gin.Context) {
	utils.LogInfo("GoogleCallback called")
	if !config.GoogleOAuthEnabled() {
		utils.NotFound(c, "Google sign-in is not configured")
		return
	}
	if err := utils.ConsumeOAuthState(c, c.Query("state")); err != nil {
		utils.LogWarn("Google callback with bad state: %v", err)
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}
	googleUser, err := fetchGoogleUser(c, token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	if !googleUser.VerifiedEmail {
		utils.Forbidden(c, "Google email is not verified")
		return
	}

	var user models.User
	err = config.DB.Preload("Tenant").
		Where("google_id = ? OR email = ?", googleUser.ID, strings.ToLower(googleUser.Email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogDebug("No account for Google email %s", googleUser.Email)
		utils.NotFound(c, "No account is registered for this Google email")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to look up user", err.Error())
		return
	}
	if user.IsBlocked {
		utils.Forbidden(c, utils.ErrUserBlocked)
		return
	}
	if !user.Tenant.IsActive {
		utils.Forbidden(c, utils.ErrTenantInactive)
		return
	}

	updates := map[string]interface{}{"last_login_at": time.Now()}
	if user.GoogleID == nil {
		updates["google_id"] = googleUser.ID
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to link Google account", err.Error())
		return
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User logged in with Google: %s", user.Email)
	if frontend := config.AppConfig.FrontendURL; frontend != "" {
		c.Redirect(http.StatusTemporaryRedirect, strings.TrimRight(frontend, "/")+"/auth/callback?token="+jwtToken)
		return
	}
	utils.Success(c, "Login successful", gin.H{
		"token": jwtToken,
		"user":  userResponse(user),
	})
}
