package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	slugRegex     = regexp.MustCompile(`[^a-z0-9]+`)
	productCode   = regexp.MustCompile(`^[A-Za-z0-9_-]{2,32}$`)
	hasLower      = regexp.MustCompile(`[a-z]`)
	hasUpper      = regexp.MustCompile(`[A-Z]`)
	hasNumber     = regexp.MustCompile(`[0-9]`)
)

// ValidateUsername checks if the username meets the requirements
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 {
		return false, "Username must be at least 3 characters long"
	}
	if len(username) > 20 {
		return false, "Username must not exceed 20 characters"
	}
	if !usernameRegex.MatchString(username) {
		return false, "Username can only contain letters, numbers, and underscores"
	}
	return true, ""
}

// ValidatePassword checks if the password meets the requirements
func ValidatePassword(password string) (bool, string) {
	if len(password) < MinPasswordLength {
		return false, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return false, fmt.Sprintf("Password must not exceed %d characters", MaxPasswordLength)
	}
	if !hasLower.MatchString(password) {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasUpper.MatchString(password) {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasNumber.MatchString(password) {
		return false, "Password must contain at least one number"
	}
	return true, ""
}

// ValidateProductCode checks a catalog code such as "FIBER-100"
func ValidateProductCode(code string) (bool, string) {
	if !productCode.MatchString(strings.TrimSpace(code)) {
		return false, "Code must be 2-32 characters of letters, numbers, dashes or underscores"
	}
	return true, ""
}

// Slugify lower-cases s and joins its words with dashes
func Slugify(s string) string {
	slug := slugRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}

// BindingErrors turns validator errors into a field→message map for the response body
func BindingErrors(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := gin.H{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[field] = "is required"
		case "oneof":
			fields[field] = "must be one of: " + fe.Param()
		case "min", "gte":
			fields[field] = "must be at least " + fe.Param()
		case "max", "lte":
			fields[field] = "must be at most " + fe.Param()
		case "email":
			fields[field] = "must be a valid email address"
		default:
			fields[field] = "is invalid"
		}
	}
	return fields
}
