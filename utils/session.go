package utils

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateKey = "oauth_state"

// NewOAuthState stores a fresh random state in the session and returns it
func NewOAuthState(c *gin.Context) (string, error) {
	state := uuid.New().String()
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		return "", err
	}
	return state, nil
}

// ConsumeOAuthState checks state against the session value and clears it
func ConsumeOAuthState(c *gin.Context, state string) error {
	session := sessions.Default(c)
	expected, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	if err := session.Save(); err != nil {
		return err
	}
	if expected == "" || state != expected {
		return errors.New("invalid oauth state")
	}
	return nil
}
