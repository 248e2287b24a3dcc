// internal/domain/user.go
package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole identifies which settlement role a user account holds.
type UserRole string

const (
	RoleProducer   UserRole = "PRODUCER"
	RoleAffiliate  UserRole = "AFFILIATE"
	RoleCoproducer UserRole = "COPRODUCER"
	RolePlatform   UserRole = "PLATFORM"
	RoleCustomer   UserRole = "CUSTOMER"
)

// ValidUserRole reports whether r is one of the known roles.
func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleProducer, RoleAffiliate, RoleCoproducer, RolePlatform, RoleCustomer:
		return true
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User represents an account that can participate in a settlement.
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Role      UserRole  `db:"role" json:"role"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser creates a new active User, validating name, email and role.
func NewUser(name, email string, role UserRole) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("user name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if !ValidUserRole(role) {
		return nil, fmt.Errorf("unknown user role %q", role)
	}

	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
