package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

// FactorChequeGateway owns the invoice↔cheque links. FindByCheque backs the
// at-most-one-link invariant check in the reconciler.
type FactorChequeGateway interface {
	Create(ctx context.Context, factorID, chequeID uuid.UUID) (*model.FactorCheque, error)
	Delete(ctx context.Context, linkID uuid.UUID) error
	ListByFactor(ctx context.Context, factorID uuid.UUID) ([]model.FactorCheque, error)
	// FindByCheque returns the active link for a cheque, or nil when the
	// cheque is unlinked.
	FindByCheque(ctx context.Context, chequeID uuid.UUID) (*model.FactorCheque, error)
}

type factorChequeGateway struct{ ds *infra.DataServiceClient }

func NewFactorChequeGateway(ds *infra.DataServiceClient) FactorChequeGateway {
	return &factorChequeGateway{ds: ds}
}

func (g *factorChequeGateway) Create(ctx context.Context, factorID, chequeID uuid.UUID) (*model.FactorCheque, error) {
	body := map[string]string{
		"factorId": factorID.String(),
		"chequeId": chequeID.String(),
	}
	var created model.FactorCheque
	if err := g.ds.Post(ctx, "/factorCheque", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *factorChequeGateway) Delete(ctx context.Context, linkID uuid.UUID) error {
	return g.ds.Delete(ctx, "/factorCheque/"+linkID.String(), nil)
}

func (g *factorChequeGateway) ListByFactor(ctx context.Context, factorID uuid.UUID) ([]model.FactorCheque, error) {
	body := map[string]string{"factorId": factorID.String()}
	var env listEnvelope[model.FactorCheque]
	// One factor holds at most a handful of cheques; a single large page
	// drains the resource.
	if err := g.ds.Filter(ctx, "/factorCheque/filter", Page{Size: 100}.values(), body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (g *factorChequeGateway) FindByCheque(ctx context.Context, chequeID uuid.UUID) (*model.FactorCheque, error) {
	body := map[string]string{"chequeId": chequeID.String()}
	var env listEnvelope[model.FactorCheque]
	if err := g.ds.Filter(ctx, "/factorCheque/filter", Page{Size: 1}.values(), body, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, nil
	}
	return &env.Data[0], nil
}
