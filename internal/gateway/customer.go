package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

type CustomerQuery struct {
	Name         string      `json:"name,omitempty"`
	NationalCode string      `json:"nationalCode,omitempty"`
	City         string      `json:"city,omitempty"`
	CustomerIDs  []uuid.UUID `json:"customerIds,omitempty"`
}

type CustomerGateway interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerUser, error)
	List(ctx context.Context, q CustomerQuery, page Page) ([]model.CustomerUser, int64, error)
}

type customerGateway struct{ ds *infra.DataServiceClient }

func NewCustomerGateway(ds *infra.DataServiceClient) CustomerGateway {
	return &customerGateway{ds: ds}
}

func (g *customerGateway) FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerUser, error) {
	var c model.CustomerUser
	if err := g.ds.Get(ctx, "/customerUser/"+id.String(), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (g *customerGateway) List(ctx context.Context, q CustomerQuery, page Page) ([]model.CustomerUser, int64, error) {
	var env listEnvelope[model.CustomerUser]
	if err := g.ds.Filter(ctx, "/customerUser/filter", page.values(), q, &env); err != nil {
		return nil, 0, err
	}
	return env.Data, env.Details.Count, nil
}
