package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

// ChequeQuery mirrors the cheque filtered-list body of the data service.
// CustomerIDs expresses set membership; leave nil for no customer narrowing.
type ChequeQuery struct {
	Number      string      `json:"number,omitempty"`
	DateFrom    string      `json:"dateFrom,omitempty"`
	DateTo      string      `json:"dateTo,omitempty"`
	MinPrice    int64       `json:"minPrice,omitempty"`
	MaxPrice    int64       `json:"maxPrice,omitempty"`
	Status      string      `json:"status,omitempty"`
	Bank        string      `json:"bank,omitempty"`
	CustomerIDs []uuid.UUID `json:"customerIds,omitempty"`
}

type ChequeGateway interface {
	Create(ctx context.Context, c *model.Cheque) (*model.Cheque, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cheque, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ChequeStatus) error
	UpdateSayyadi(ctx context.Context, id uuid.UUID, sayyadi bool) error
	// Delete exists for saga compensation only: removing a cheque whose
	// factor link could not be created.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q ChequeQuery, page Page) ([]model.Cheque, int64, error)
}

type chequeGateway struct{ ds *infra.DataServiceClient }

func NewChequeGateway(ds *infra.DataServiceClient) ChequeGateway {
	return &chequeGateway{ds: ds}
}

func (g *chequeGateway) Create(ctx context.Context, c *model.Cheque) (*model.Cheque, error) {
	var created model.Cheque
	if err := g.ds.Post(ctx, "/cheque", c, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *chequeGateway) FindByID(ctx context.Context, id uuid.UUID) (*model.Cheque, error) {
	var c model.Cheque
	if err := g.ds.Get(ctx, "/cheque/"+id.String(), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (g *chequeGateway) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ChequeStatus) error {
	body := map[string]interface{}{"status": status}
	return g.ds.Put(ctx, "/cheque/"+id.String(), body, nil)
}

func (g *chequeGateway) UpdateSayyadi(ctx context.Context, id uuid.UUID, sayyadi bool) error {
	body := map[string]interface{}{"sayyadi": sayyadi}
	return g.ds.Put(ctx, "/cheque/"+id.String(), body, nil)
}

func (g *chequeGateway) Delete(ctx context.Context, id uuid.UUID) error {
	return g.ds.Delete(ctx, "/cheque/"+id.String(), nil)
}

func (g *chequeGateway) List(ctx context.Context, q ChequeQuery, page Page) ([]model.Cheque, int64, error) {
	var env listEnvelope[model.Cheque]
	if err := g.ds.Filter(ctx, "/cheque/filter", page.values(), q, &env); err != nil {
		return nil, 0, err
	}
	return env.Data, env.Details.Count, nil
}
