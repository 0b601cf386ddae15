package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type FactorFilter struct {
	CustomerID    string `form:"customer_id" validate:"omitempty,uuid"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method" validate:"omitempty,oneof=cash cheque"`
	PageIndex     int    `form:"page_index,default=0" validate:"min=0"`
	PageSize      int    `form:"page_size,default=20" validate:"min=1,max=100"`
}

type FactorResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	CreatorID     string `json:"creator_id"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	TotalAmount   int64  `json:"total_amount"`
	Date          string `json:"date"`
	CreatedAt     string `json:"created_at"`
}

type FactorListResponse struct {
	Data  []FactorResponse `json:"data"`
	Count int64            `json:"count"`
}

// ─── Reconciliation ─────────────────────────────────────────────────────────

type AssignChequeRequest struct {
	ChequeID string `json:"cheque_id" validate:"required,uuid"`
}

// AssignNewChequeRequest creates a cheque and links it to the factor in one
// call. If the link step fails, the created cheque is compensated away — the
// caller never ends up with an orphan.
type AssignNewChequeRequest struct {
	Cheque CreateChequeRequest `json:"cheque" validate:"required"`
}

type FactorChequeResponse struct {
	ID       string `json:"id"`
	FactorID string `json:"factor_id"`
	ChequeID string `json:"cheque_id"`
}

// CreateTransactionRequest records a cash payment. Amount arrives as a string
// because operators paste values with local numeral glyphs and separators;
// it is transcoded and parsed server-side and must come out positive.
type CreateTransactionRequest struct {
	TrackingCode string `json:"tracking_code" validate:"required"`
	Amount       string `json:"amount"        validate:"required"`
	// Date is an 8-digit Jalali key.
	Date string `json:"date" validate:"required"`
}

type TransactionResponse struct {
	ID           string `json:"id"`
	FactorID     string `json:"factor_id"`
	CustomerID   string `json:"customer_id"`
	TrackingCode string `json:"tracking_code"`
	Amount       int64  `json:"amount"`
	Method       string `json:"method"`
	CreatedAt    int64  `json:"created_at"`
}

// CoverageResponse reports how much of a factor is nominally and actually
// covered. Coverage counts every linked cheque regardless of status plus all
// cash transactions; PassedCoverage restricts cheques to status "passed".
type CoverageResponse struct {
	FactorID        string                `json:"factor_id"`
	TotalAmount     int64                 `json:"total_amount"`
	Coverage        int64                 `json:"coverage"`
	PassedCoverage  int64                 `json:"passed_coverage"`
	Remaining       int64                 `json:"remaining"`
	CoveragePercent decimal.Decimal       `json:"coverage_percent"`
	Cheques         []ChequeResponse      `json:"cheques"`
	Transactions    []TransactionResponse `json:"transactions"`
}
