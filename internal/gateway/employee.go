package gateway

import (
	"context"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/google/uuid"
)

// EmployeeGateway resolves staff members; cheque creation validates that the
// managing employee exists, and the notice worker looks up their address.
type EmployeeGateway interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
}

type employeeGateway struct{ ds *infra.DataServiceClient }

func NewEmployeeGateway(ds *infra.DataServiceClient) EmployeeGateway {
	return &employeeGateway{ds: ds}
}

func (g *employeeGateway) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	if err := g.ds.Get(ctx, "/manager/"+id.String(), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
