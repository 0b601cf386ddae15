package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

// RelationQuery filters the customerRelation list by manager and/or the
// customer's name fields.
type RelationQuery struct {
	ManagerID *uuid.UUID `json:"managerId,omitempty"`
	Name      string     `json:"name,omitempty"`
}

// RelationGateway owns customer↔manager assignments. Create surfaces the
// upstream duplicate answer as a conflict error; callers decide whether that
// is fatal (it usually is not).
type RelationGateway interface {
	Create(ctx context.Context, customerID, managerID uuid.UUID) (*model.CustomerRelation, error)
	Delete(ctx context.Context, customerID, managerID uuid.UUID) error
	List(ctx context.Context, q RelationQuery, page Page) ([]model.CustomerRelation, int64, error)
}

type relationGateway struct{ ds *infra.DataServiceClient }

func NewRelationGateway(ds *infra.DataServiceClient) RelationGateway {
	return &relationGateway{ds: ds}
}

func (g *relationGateway) Create(ctx context.Context, customerID, managerID uuid.UUID) (*model.CustomerRelation, error) {
	body := map[string]string{
		"customerId": customerID.String(),
		"managerId":  managerID.String(),
	}
	var created model.CustomerRelation
	if err := g.ds.Post(ctx, "/customerRelation", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *relationGateway) Delete(ctx context.Context, customerID, managerID uuid.UUID) error {
	// The resource deletes by pair, not by relation id.
	body := map[string]string{
		"customerId": customerID.String(),
		"managerId":  managerID.String(),
	}
	return g.ds.Delete(ctx, "/customerRelation", body)
}

func (g *relationGateway) List(ctx context.Context, q RelationQuery, page Page) ([]model.CustomerRelation, int64, error) {
	var env listEnvelope[model.CustomerRelation]
	if err := g.ds.Filter(ctx, "/customerRelation/filter", page.values(), q, &env); err != nil {
		return nil, 0, err
	}
	return env.Data, env.Details.Count, nil
}
