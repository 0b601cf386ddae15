package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

// ChequeLogGateway appends and lists audit entries. Entries are write-once:
// the resource has no update or delete.
type ChequeLogGateway interface {
	Append(ctx context.Context, entry *model.ChequeLogEntry) (*model.ChequeLogEntry, error)
	ListByCheque(ctx context.Context, chequeID uuid.UUID, page Page) ([]model.ChequeLogEntry, int64, error)
}

type chequeLogGateway struct{ ds *infra.DataServiceClient }

func NewChequeLogGateway(ds *infra.DataServiceClient) ChequeLogGateway {
	return &chequeLogGateway{ds: ds}
}

func (g *chequeLogGateway) Append(ctx context.Context, entry *model.ChequeLogEntry) (*model.ChequeLogEntry, error) {
	var created model.ChequeLogEntry
	if err := g.ds.Post(ctx, "/chequeLog", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *chequeLogGateway) ListByCheque(ctx context.Context, chequeID uuid.UUID, page Page) ([]model.ChequeLogEntry, int64, error) {
	body := map[string]string{"chequeId": chequeID.String()}
	var env listEnvelope[model.ChequeLogEntry]
	if err := g.ds.Filter(ctx, "/chequeLog/filter", page.values(), body, &env); err != nil {
		return nil, 0, err
	}
	return env.Data, env.Details.Count, nil
}
