package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ScopeService derives customer visibility from the caller's role. Every
// cheque/factor/customer query goes through a resolved scope before the
// gateway sees it.
type ScopeService interface {
	ResolveScope(ctx context.Context, role model.Role, employeeID uuid.UUID) (model.Scope, error)
	VisibleSections(role model.Role) []string
}

type scopeService struct {
	relations RelationService
	rdb       *redis.Client // optional scope-set cache; nil disables caching
}

func NewScopeService(relations RelationService, rdb *redis.Client) ScopeService {
	return &scopeService{relations: relations, rdb: rdb}
}

// scopeCacheTTL keeps marketer scope sets hot without letting a relation
// change stay invisible for long.
const scopeCacheTTL = 60 * time.Second

func (s *scopeService) ResolveScope(ctx context.Context, role model.Role, employeeID uuid.UUID) (model.Scope, error) {
	switch role {
	case model.RoleManager, model.RoleDeveloper, model.RoleFinanceManager, model.RoleSaleManager:
		// Unrestricted regardless of relation content.
		return model.UnrestrictedScope(), nil
	case model.RoleMarketer:
		ids, err := s.marketerCustomerIDs(ctx, employeeID)
		if err != nil {
			return model.Scope{}, err
		}
		return model.RestrictedScope(ids), nil
	case model.RoleCustomer:
		// Rejected before this policy by the auth middleware; guard anyway.
		return model.Scope{}, apperr.New(apperr.KindValidation, "customer role has no console access")
	default:
		return model.Scope{}, apperr.Newf(apperr.KindValidation, "unknown role %q", role)
	}
}

func (s *scopeService) marketerCustomerIDs(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	cacheKey := "scope:marketer:" + employeeID.String()

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var ids []uuid.UUID
			if json.Unmarshal([]byte(raw), &ids) == nil {
				return ids, nil
			}
		}
	}

	ids, err := s.relations.ListCustomerIDsForManager(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(ids); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, scopeCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("scope: cache write failed")
			}
		}
	}
	return ids, nil
}

// Console sections. Employee management and internal configuration are
// visible only to manager/developer; every other non-customer role sees the
// remaining sections.
const (
	SectionDashboard = "dashboard"
	SectionCustomers = "customers"
	SectionFactors   = "factors"
	SectionCheques   = "cheques"
	SectionRelations = "relations"
	SectionReports   = "reports"
	SectionEmployees = "employees"
	SectionSettings  = "settings"
)

func (s *scopeService) VisibleSections(role model.Role) []string {
	if role == model.RoleCustomer {
		return nil
	}
	sections := []string{
		SectionDashboard, SectionCustomers, SectionFactors,
		SectionCheques, SectionRelations, SectionReports,
	}
	if role == model.RoleManager || role == model.RoleDeveloper {
		sections = append(sections, SectionEmployees, SectionSettings)
	}
	return sections
}

// ApplyScope intersects a scope with an optional base customer filter and
// reports whether the query can be skipped outright. When the scope is
// restricted to an empty set (or the intersection is empty) the caller must
// NOT issue the underlying query — there is no sane wire encoding for
// "customer id in ∅" and the legacy service treated it as "no filter".
func ApplyScope(scope model.Scope, base []uuid.UUID) (ids []uuid.UUID, matchNothing bool) {
	if scope.Unrestricted() {
		return base, false
	}
	if scope.Empty() {
		return nil, true
	}
	if len(base) == 0 {
		return scope.CustomerIDs(), false
	}
	for _, id := range base {
		if scope.Allows(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, true
	}
	return ids, false
}
