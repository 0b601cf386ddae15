package service

import (
	"context"
	"sync"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type RelationService interface {
	Create(ctx context.Context, customerID, managerID uuid.UUID) (*model.CustomerRelation, error)
	Delete(ctx context.Context, customerID, managerID uuid.UUID) error
	List(ctx context.Context, filter dto.RelationFilter) (*dto.RelationListResponse, error)
	// ListCustomerIDsForManager drains every page; an empty set is a valid,
	// common result (a marketer with no assignments yet).
	ListCustomerIDsForManager(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error)
	BulkAssign(ctx context.Context, managerID uuid.UUID, customerIDs []uuid.UUID) (*dto.BulkAssignResponse, error)
}

type relationService struct {
	gw gateway.RelationGateway
}

func NewRelationService(gw gateway.RelationGateway) RelationService {
	return &relationService{gw: gw}
}

func (s *relationService) Create(ctx context.Context, customerID, managerID uuid.UUID) (*model.CustomerRelation, error) {
	return s.gw.Create(ctx, customerID, managerID)
}

func (s *relationService) Delete(ctx context.Context, customerID, managerID uuid.UUID) error {
	return s.gw.Delete(ctx, customerID, managerID)
}

func (s *relationService) List(ctx context.Context, filter dto.RelationFilter) (*dto.RelationListResponse, error) {
	q := gateway.RelationQuery{Name: filter.Name}
	if filter.ManagerID != "" {
		id, err := uuid.Parse(filter.ManagerID)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "manager_id is not a valid id")
		}
		q.ManagerID = &id
	}
	relations, count, err := s.gw.List(ctx, q, gateway.Page{Index: filter.PageIndex, Size: filter.PageSize})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RelationResponse, 0, len(relations))
	for _, r := range relations {
		items = append(items, dto.RelationResponse{
			ID:         r.ID.String(),
			CustomerID: r.CustomerID.String(),
			ManagerID:  r.ManagerID.String(),
			CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.RelationListResponse{Data: items, Count: count}, nil
}

// relationPageSize is the drain page size for full scope resolution.
const relationPageSize = 100

func (s *relationService) ListCustomerIDsForManager(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	q := gateway.RelationQuery{ManagerID: &managerID}

	var ids []uuid.UUID
	for page := 0; ; page++ {
		relations, count, err := s.gw.List(ctx, q, gateway.Page{Index: page, Size: relationPageSize})
		if err != nil {
			return nil, err
		}
		for _, r := range relations {
			ids = append(ids, r.CustomerID)
		}
		if len(relations) == 0 || int64(len(ids)) >= count {
			break
		}
	}
	return ids, nil
}

// bulkConcurrency caps how many relation creates are in flight at once.
const bulkConcurrency = 8

// BulkAssign fires one create per customer id concurrently and aggregates
// outcomes. A duplicate pair is a soft conflict, not a failure; the batch as a
// whole succeeds when at least one relation was created or already existed.
func (s *relationService) BulkAssign(ctx context.Context, managerID uuid.UUID, customerIDs []uuid.UUID) (*dto.BulkAssignResponse, error) {
	var (
		mu   sync.Mutex
		resp dto.BulkAssignResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for _, customerID := range customerIDs {
		customerID := customerID
		g.Go(func() error {
			_, err := s.gw.Create(gctx, customerID, managerID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				resp.Created++
			case apperr.Is(err, apperr.KindConflict):
				resp.Duplicate++
			default:
				resp.Failed++
				log.Warn().
					Str("customer_id", customerID.String()).
					Str("manager_id", managerID.String()).
					Err(err).
					Msg("bulk assign: relation create failed")
			}
			// Never abort the batch — failures are folded into counts.
			return nil
		})
	}
	_ = g.Wait()

	resp.Success = resp.Created+resp.Duplicate > 0
	return &resp, nil
}
