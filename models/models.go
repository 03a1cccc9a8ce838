package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is an isolated customer account. Every catalog, CRM and finance row belongs to one.
type Tenant struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Slug     string `json:"slug" gorm:"uniqueIndex;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// User represents a member of a tenant: staff or customer, depending on Role
type User struct {
	gorm.Model
	TenantID    uint      `json:"tenant_id" gorm:"index;not null"`
	Tenant      Tenant    `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	Role        Role      `json:"role" gorm:"type:varchar(20);not null;default:'customer'"`
	IsBlocked   bool      `json:"is_blocked"`
	LastLoginAt time.Time `json:"last_login_at"`
	GoogleID    *string   `gorm:"uniqueIndex" json:"google_id,omitempty"`
}

// FullName joins first and last name, falling back to the username
func (u User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// Admin represents a platform operator. Admins are not tied to a tenant.
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
