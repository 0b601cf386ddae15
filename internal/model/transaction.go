package model

import "github.com/google/uuid"

// Transaction is a cash payment recorded against a factor. Method is always
// cash; cheques travel through FactorCheque links instead.
type Transaction struct {
	ID           uuid.UUID     `json:"id"`
	FactorID     uuid.UUID     `json:"factorId"`
	CustomerID   uuid.UUID     `json:"customerId"`
	TrackingCode string        `json:"trackingCode"`
	Amount       int64         `json:"amount"` // rials, positive
	Method       PaymentMethod `json:"method"`
	// CreatedAt is a coarse day-granularity unix timestamp derived from the
	// Jalali date key; used only for chronological ordering.
	CreatedAt int64 `json:"createdAt"`
}
