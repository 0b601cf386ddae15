package model

import (
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/google/uuid"
)

// PaymentMethod of a factor (invoice).
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCheque PaymentMethod = "cheque"
)

// FactorStatus — only the terminal finance-approved status matters to this
// core: it blocks cheque unassignment. Other transitions belong upstream.
type FactorStatus string

const (
	FactorCreated         FactorStatus = "created"
	FactorPendingFinance  FactorStatus = "pendingFinance"
	FactorApprovedFinance FactorStatus = "approvedByFinance"
	FactorCanceled        FactorStatus = "canceled"
)

// FinanceApproved reports whether the factor is locked by finance approval.
func (s FactorStatus) FinanceApproved() bool { return s == FactorApprovedFinance }

// Factor is a billable invoice owed by a customer, settled via cash and/or
// cheques.
type Factor struct {
	ID            uuid.UUID      `json:"id"`
	CustomerID    uuid.UUID      `json:"customerId"`
	CreatorID     uuid.UUID      `json:"creatorId"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	Status        FactorStatus   `json:"status"`
	TotalAmount   int64          `json:"totalAmount"` // rials
	Date          jalali.DateKey `json:"date"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// FactorCheque links a cheque to a factor. A cheque id appears in at most
// one link at any time — the core uniqueness invariant of the reconciler.
type FactorCheque struct {
	ID       uuid.UUID `json:"id"`
	FactorID uuid.UUID `json:"factorId"`
	ChequeID uuid.UUID `json:"chequeId"`
}
