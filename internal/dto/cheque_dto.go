package dto

import (
	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// ChequeFilter is bound from the query string of GET /v1/cheques.
// Date bounds are 8-digit Jalali keys; amounts are plain rial integers.
type ChequeFilter struct {
	Number   string `form:"number"`
	DateFrom string `form:"date_from" validate:"omitempty,len=8"`
	DateTo   string `form:"date_to"   validate:"omitempty,len=8"`
	MinPrice int64  `form:"min_price" validate:"min=0"`
	MaxPrice int64  `form:"max_price" validate:"min=0"`
	Status   string `form:"status"    validate:"omitempty,oneof=created passed rejected canceled"`
	Bank     string `form:"bank"`
	// CustomerID narrows to one customer; the resolved scope may narrow
	// further (or replace it) before the gateway call.
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	PageIndex  int    `form:"page_index,default=0" validate:"min=0"`
	PageSize   int    `form:"page_size,default=20" validate:"min=1,max=100"`
}

type ChequeListResponse struct {
	Data  []ChequeResponse `json:"data"`
	Count int64            `json:"count"`
}

// ─── Requests ───────────────────────────────────────────────────────────────

type CreateChequeRequest struct {
	Number string `json:"number" validate:"required"`
	// IssueDate is an 8-digit Jalali key; local numeral glyphs are accepted.
	IssueDate   string  `json:"issue_date"  validate:"required"`
	FaceAmount  int64   `json:"face_amount" validate:"required,gt=0"`
	Bank        string  `json:"bank"        validate:"required"`
	CustomerID  string  `json:"customer_id" validate:"required,uuid"`
	ManagerID   string  `json:"manager_id"  validate:"required,uuid"`
	Sayyadi     bool    `json:"sayyadi"`
	Description *string `json:"description"`
}

type UpdateChequeStatusRequest struct {
	Status  string `json:"status"  validate:"required,oneof=passed rejected canceled"`
	Comment string `json:"comment" validate:"required,min=3"`
}

type ToggleSayyadiRequest struct {
	Sayyadi bool   `json:"sayyadi"`
	Comment string `json:"comment"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type ChequeResponse struct {
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	IssueDate   string  `json:"issue_date"`
	IssueDateFa string  `json:"issue_date_fa"` // "YYYY/MM/DD" in local digits
	FaceAmount  int64   `json:"face_amount"`
	Bank        string  `json:"bank"`
	Status      string  `json:"status"`
	Sayyadi     bool    `json:"sayyadi"`
	CustomerID  string  `json:"customer_id"`
	ManagerID   string  `json:"manager_id"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type ChequeLogResponse struct {
	ID        string `json:"id"`
	ChequeID  string `json:"cheque_id"`
	Status    string `json:"status"`
	Sayyadi   bool   `json:"sayyadi"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// NewChequeResponse maps a model cheque to its API shape.
func NewChequeResponse(c *model.Cheque) ChequeResponse {
	return ChequeResponse{
		ID:          c.ID.String(),
		Number:      c.Number,
		IssueDate:   string(c.IssueDate),
		IssueDateFa: jalali.ToLocalDigits(jalali.ToDisplay(c.IssueDate)),
		FaceAmount:  c.FaceAmount,
		Bank:        string(c.Bank),
		Status:      string(c.Status),
		Sayyadi:     c.Sayyadi,
		CustomerID:  c.CustomerID.String(),
		ManagerID:   c.ManagerID.String(),
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
