package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

type FactorQuery struct {
	Status        string      `json:"status,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	CustomerIDs   []uuid.UUID `json:"customerIds,omitempty"`
}

type FactorGateway interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factor, error)
	List(ctx context.Context, q FactorQuery, page Page) ([]model.Factor, int64, error)
}

type factorGateway struct{ ds *infra.DataServiceClient }

func NewFactorGateway(ds *infra.DataServiceClient) FactorGateway {
	return &factorGateway{ds: ds}
}

func (g *factorGateway) FindByID(ctx context.Context, id uuid.UUID) (*model.Factor, error) {
	var f model.Factor
	if err := g.ds.Get(ctx, "/factor/"+id.String(), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (g *factorGateway) List(ctx context.Context, q FactorQuery, page Page) ([]model.Factor, int64, error) {
	var env listEnvelope[model.Factor]
	if err := g.ds.Filter(ctx, "/factor/filter", page.values(), q, &env); err != nil {
		return nil, 0, err
	}
	return env.Data, env.Details.Count, nil
}
