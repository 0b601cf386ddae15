package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerRelation assigns a customer to a managing employee. The pair is
// unique upstream; creating a duplicate is a soft conflict, not a failure.
// These relations are the sole basis for a marketer's visible customer set.
type CustomerRelation struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	ManagerID  uuid.UUID `json:"managerId"`
	CreatedAt  time.Time `json:"createdAt"`
}
