package model

import (
	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/google/uuid"
)

// Grade is the customer tier; MaxCredit is the tier-wide credit ceiling.
type Grade struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	MaxCredit int64     `json:"maxCredit"`
}

// Brand a customer is permitted to order from.
type Brand struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CustomerUser is a buying customer. Never hard-deleted; editing screens
// mutate fields, this core only reads them.
type CustomerUser struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	NationalCode string    `json:"nationalCode"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	// MaxDebt and MaxOpenAccount are per-customer credit limits in rials.
	MaxDebt        int64          `json:"maxDebt"`
	MaxOpenAccount int64          `json:"maxOpenAccount"`
	Grade          *Grade         `json:"grade,omitempty"`
	Brands         []Brand        `json:"brands,omitempty"`
	BirthDate      jalali.DateKey `json:"birthDate,omitempty"`
	Active         bool           `json:"active"`
}

// FullName joins first and last name for display.
func (c *CustomerUser) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}
