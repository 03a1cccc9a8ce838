package utils

// Application constants
const (
	AppName    = "BillSphere"
	APIVersion = "v1"

	DefaultPaginationLimit = 10
	MaxPaginationLimit     = 100

	MinPasswordLength = 8
	MaxPasswordLength = 64

	// Days an offer stays open when no valid_until is given
	DefaultOfferValidityDays = 14
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrTenantInactive     = "This workspace has been suspended"
	ErrInvalidToken       = "Please login for access"
	ErrForbidden          = "You do not have permission to perform this action"
)
