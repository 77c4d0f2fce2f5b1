package models

import "time"

// User roles recognised across the platform.
const (
	RoleStudent    = "STUDENT"
	RoleTA         = "TA"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// ValidRole reports whether the given value is a known user role.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTA, RoleInstructor, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents a platform account provisioned from the identity provider
// on first login, or created directly by seeding tools.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Auth0ID         *string    `gorm:"size:128;uniqueIndex" json:"auth0_id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	FirstName       string     `gorm:"size:128" json:"first_name"`
	LastName        string     `gorm:"size:128" json:"last_name"`
	Email           string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Picture         string     `gorm:"size:512" json:"picture"`
	Bio             string     `gorm:"type:text" json:"bio"`
	PhoneNumber     string     `gorm:"size:32" json:"phone_number"`
	Role            string     `gorm:"size:16;not null;default:STUDENT" json:"role"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
