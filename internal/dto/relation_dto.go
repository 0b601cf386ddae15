package dto

// ─── Requests ───────────────────────────────────────────────────────────────

type CreateRelationRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	ManagerID  string `json:"manager_id"  validate:"required,uuid"`
}

// BulkAssignRequest assigns many customers to one manager in a single shot.
// Existing pairs count as duplicates, not failures.
type BulkAssignRequest struct {
	ManagerID   string   `json:"manager_id"   validate:"required,uuid"`
	CustomerIDs []string `json:"customer_ids" validate:"required,min=1,dive,uuid"`
}

type RelationFilter struct {
	ManagerID string `form:"manager_id" validate:"omitempty,uuid"`
	Name      string `form:"name"`
	PageIndex int    `form:"page_index,default=0" validate:"min=0"`
	PageSize  int    `form:"page_size,default=20" validate:"min=1,max=100"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type RelationResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	ManagerID  string `json:"manager_id"`
	CreatedAt  string `json:"created_at"`
}

type RelationListResponse struct {
	Data  []RelationResponse `json:"data"`
	Count int64              `json:"count"`
}

// BulkAssignResponse aggregates per-customer outcomes. The operation as a
// whole succeeds when at least one relation was created or already existed.
type BulkAssignResponse struct {
	Created   int  `json:"created"`
	Duplicate int  `json:"duplicate"`
	Failed    int  `json:"failed"`
	Success   bool `json:"success"`
}
