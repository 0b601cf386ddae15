package dto

import "github.com/Pazh/alami-b2b-admin-sub000/internal/model"

type CustomerFilter struct {
	Name         string `form:"name"`
	NationalCode string `form:"national_code"`
	City         string `form:"city"`
	PageIndex    int    `form:"page_index,default=0" validate:"min=0"`
	PageSize     int    `form:"page_size,default=20" validate:"min=1,max=100"`
}

type CustomerResponse struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	NationalCode   string   `json:"national_code"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	MaxDebt        int64    `json:"max_debt"`
	MaxOpenAccount int64    `json:"max_open_account"`
	Grade          string   `json:"grade,omitempty"`
	MaxCredit      int64    `json:"max_credit,omitempty"`
	Brands         []string `json:"brands,omitempty"`
	Active         bool     `json:"active"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Count int64              `json:"count"`
}

// CustomerTypeaheadResponse carries the winning lookup for the caller's
// newest query; seq lets the client discard any older response it holds.
type CustomerTypeaheadResponse struct {
	Seq   uint64             `json:"seq"`
	Query string             `json:"query"`
	Data  []CustomerResponse `json:"data"`
}

// NewCustomerResponse flattens grade and brands for the console list views.
func NewCustomerResponse(c *model.CustomerUser) CustomerResponse {
	resp := CustomerResponse{
		ID:             c.ID.String(),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		NationalCode:   c.NationalCode,
		City:           c.City,
		State:          c.State,
		MaxDebt:        c.MaxDebt,
		MaxOpenAccount: c.MaxOpenAccount,
		Active:         c.Active,
	}
	if c.Grade != nil {
		resp.Grade = c.Grade.Title
		resp.MaxCredit = c.Grade.MaxCredit
	}
	for _, b := range c.Brands {
		resp.Brands = append(resp.Brands, b.Name)
	}
	return resp
}
