package service

import (
	"context"
	"sync"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/search"

	"github.com/google/uuid"
)

// Type-ahead tuning: the wait absorbs a fast typist's keystrokes, the guard
// bounds how long a superseded request lingers before giving up.
const (
	typeaheadWait     = 250 * time.Millisecond
	typeaheadTimeout  = 3 * time.Second
	typeaheadPageSize = 10
)

// CustomerService is a thin scope-aware read layer over the customer gateway.
type CustomerService interface {
	Get(ctx context.Context, scope model.Scope, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, scope model.Scope, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	// Typeahead serves interactive name lookup. Rapid calls from the same
	// caller are debounced into one upstream query and answered
	// out-of-order-safe: the delivered rows always belong to the caller's
	// newest query, and the response echoes seq/query so the client can
	// discard anything older it still holds. Flush skips the debounce wait.
	Typeahead(ctx context.Context, scope model.Scope, callerID uuid.UUID, query string, flush bool) (*dto.CustomerTypeaheadResponse, error)
}

type customerService struct {
	gw gateway.CustomerGateway

	mu         sync.Mutex
	debouncers map[uuid.UUID]*callerDebouncer
}

// callerDebouncer pins one debouncer per operator; the scope is refreshed on
// every call so a relation change takes effect mid-session.
type callerDebouncer struct {
	mu    sync.Mutex
	scope model.Scope
	d     *search.Debouncer[[]dto.CustomerResponse]
}

func NewCustomerService(gw gateway.CustomerGateway) CustomerService {
	return &customerService{
		gw:         gw,
		debouncers: map[uuid.UUID]*callerDebouncer{},
	}
}

func (s *customerService) Get(ctx context.Context, scope model.Scope, id uuid.UUID) (*dto.CustomerResponse, error) {
	if !scope.Allows(id) {
		return nil, apperr.New(apperr.KindNotFound, "customer not found")
	}
	customer, err := s.gw.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, scope model.Scope, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	ids, none := ApplyScope(scope, nil)
	if none {
		return &dto.CustomerListResponse{Data: []dto.CustomerResponse{}, Count: 0}, nil
	}

	customers, count, err := s.gw.List(ctx, gateway.CustomerQuery{
		Name:         filter.Name,
		NationalCode: jalali.ToASCIIDigits(filter.NationalCode),
		City:         filter.City,
		CustomerIDs:  ids,
	}, gateway.Page{Index: filter.PageIndex, Size: filter.PageSize})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, dto.NewCustomerResponse(&customers[i]))
	}
	return &dto.CustomerListResponse{Data: items, Count: count}, nil
}

func (s *customerService) Typeahead(ctx context.Context, scope model.Scope, callerID uuid.UUID, query string, flush bool) (*dto.CustomerTypeaheadResponse, error) {
	cd := s.debouncerFor(callerID)
	cd.mu.Lock()
	cd.scope = scope
	cd.mu.Unlock()

	// The fetch must outlive this request; a superseded caller abandoning
	// its connection must not cancel the winning query's lookup.
	fetchCtx := context.WithoutCancel(ctx)
	var seq uint64
	if flush {
		seq = cd.d.Flush(fetchCtx, query)
	} else {
		seq = cd.d.Submit(fetchCtx, query)
	}

	guard := time.NewTimer(typeaheadTimeout)
	defer guard.Stop()
	for {
		select {
		case res := <-cd.d.Results():
			if res.Seq < seq {
				// Leftover from an earlier burst; keep waiting for ours.
				continue
			}
			return &dto.CustomerTypeaheadResponse{Seq: res.Seq, Query: res.Query, Data: res.Value}, nil
		case <-ctx.Done():
			return nil, apperr.New(apperr.KindTransport, "lookup canceled")
		case <-guard.C:
			return nil, apperr.New(apperr.KindConflict, "lookup superseded by a newer query")
		}
	}
}

func (s *customerService) debouncerFor(callerID uuid.UUID) *callerDebouncer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cd, ok := s.debouncers[callerID]; ok {
		return cd
	}
	cd := &callerDebouncer{}
	cd.d = search.NewDebouncer(typeaheadWait, func(ctx context.Context, query string) ([]dto.CustomerResponse, error) {
		cd.mu.Lock()
		scope := cd.scope
		cd.mu.Unlock()
		list, err := s.List(ctx, scope, dto.CustomerFilter{Name: query, PageSize: typeaheadPageSize})
		if err != nil {
			return nil, err
		}
		return list.Data, nil
	})
	s.debouncers[callerID] = cd
	return cd
}
