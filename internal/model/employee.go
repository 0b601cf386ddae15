package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the console role carried in the JWT.
// "customer" has no console access at all — requests with it are rejected at
// the auth middleware, before any policy runs.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleMarketer       Role = "marketer"
	RoleDeveloper      Role = "developer"
	RoleFinanceManager Role = "financeManager"
	RoleSaleManager    Role = "saleManager"
	RoleManager        Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleMarketer, RoleDeveloper, RoleFinanceManager,
		RoleSaleManager, RoleManager:
		return true
	}
	return false
}

// Employee is a staff member (the data service calls them managers).
type Employee struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	NationalCode string    `json:"nationalCode"`
	Email        *string   `json:"email,omitempty"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}
