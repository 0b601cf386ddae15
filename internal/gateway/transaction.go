package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

type TransactionGateway interface {
	Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error)
	ListByFactor(ctx context.Context, factorID uuid.UUID) ([]model.Transaction, error)
}

type transactionGateway struct{ ds *infra.DataServiceClient }

func NewTransactionGateway(ds *infra.DataServiceClient) TransactionGateway {
	return &transactionGateway{ds: ds}
}

func (g *transactionGateway) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	var created model.Transaction
	if err := g.ds.Post(ctx, "/transaction", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *transactionGateway) ListByFactor(ctx context.Context, factorID uuid.UUID) ([]model.Transaction, error) {
	body := map[string]string{"factorId": factorID.String()}
	var env listEnvelope[model.Transaction]
	if err := g.ds.Filter(ctx, "/transaction/filter", Page{Size: 100}.values(), body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
