package service

import (
	"context"
	"sort"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ChequeService interface {
	Create(ctx context.Context, req dto.CreateChequeRequest) (*dto.ChequeResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateChequeStatusRequest) (*dto.ChequeLogResponse, error)
	ToggleSayyadi(ctx context.Context, id uuid.UUID, req dto.ToggleSayyadiRequest) (*dto.ChequeLogResponse, error)
	// History returns the full audit log, most recent first.
	History(ctx context.Context, scope model.Scope, id uuid.UUID) ([]dto.ChequeLogResponse, error)
	List(ctx context.Context, scope model.Scope, filter dto.ChequeFilter) (*dto.ChequeListResponse, error)
	Get(ctx context.Context, scope model.Scope, id uuid.UUID) (*dto.ChequeResponse, error)
}

type chequeService struct {
	cheques    gateway.ChequeGateway
	logs       gateway.ChequeLogGateway
	customers  gateway.CustomerGateway
	employees  gateway.EmployeeGateway
	dispatcher *worker.Dispatcher // nil disables async notices
}

func NewChequeService(
	cheques gateway.ChequeGateway,
	logs gateway.ChequeLogGateway,
	customers gateway.CustomerGateway,
	employees gateway.EmployeeGateway,
	dispatcher *worker.Dispatcher,
) ChequeService {
	return &chequeService{
		cheques:    cheques,
		logs:       logs,
		customers:  customers,
		employees:  employees,
		dispatcher: dispatcher,
	}
}

// ── Create ───────────────────────────────────────────────────────────────────
// Validates everything locally before the first remote call (number, date,
// amount, bank), then resolves customer and employee upstream, creates the
// cheque and appends the initial audit entry.

func (s *chequeService) Create(ctx context.Context, req dto.CreateChequeRequest) (*dto.ChequeResponse, error) {
	number := jalali.ToASCIIDigits(req.Number)
	if number == "" {
		return nil, apperr.New(apperr.KindValidation, "cheque number is required")
	}

	issueDate := jalali.DateKey(jalali.ToASCIIDigits(req.IssueDate))
	if !jalali.Validate(issueDate) {
		return nil, apperr.Newf(apperr.KindValidation, "issue date %q is not a valid date", req.IssueDate)
	}

	if req.FaceAmount <= 0 {
		return nil, apperr.New(apperr.KindValidation, "face amount must be positive")
	}

	bank := model.BankCode(req.Bank)
	if !bank.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "unknown bank %q", req.Bank)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "customer_id is not a valid id")
	}
	managerID, err := uuid.Parse(req.ManagerID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "manager_id is not a valid id")
	}

	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, apperr.Wrap(apperr.KindOf(err), "cheque customer not resolvable", err)
	}
	if _, err := s.employees.FindByID(ctx, managerID); err != nil {
		return nil, apperr.Wrap(apperr.KindOf(err), "cheque manager not resolvable", err)
	}

	cheque := &model.Cheque{
		Number:      number,
		IssueDate:   issueDate,
		FaceAmount:  req.FaceAmount,
		Bank:        bank,
		Status:      model.ChequeCreated,
		Sayyadi:     req.Sayyadi,
		CustomerID:  customerID,
		ManagerID:   managerID,
		Description: req.Description,
	}
	created, err := s.cheques.Create(ctx, cheque)
	if err != nil {
		return nil, err
	}

	s.appendLog(ctx, created, "cheque registered")

	resp := dto.NewChequeResponse(created)
	return &resp, nil
}

// ── UpdateStatus ─────────────────────────────────────────────────────────────
// Strict transition table: created is the only non-terminal status. Appends
// exactly one audit entry; a rejection additionally enqueues a notice to the
// managing employee.

func (s *chequeService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateChequeStatusRequest) (*dto.ChequeLogResponse, error) {
	next := model.ChequeStatus(req.Status)
	if !next.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "unknown status %q", req.Status)
	}

	cheque, err := s.cheques.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cheque.Status.CanTransitionTo(next) {
		return nil, apperr.Newf(apperr.KindInvalidState,
			"cheque %s is %s; no further status change is allowed", cheque.Number, cheque.Status)
	}

	if err := s.cheques.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	cheque.Status = next

	entry, err := s.logs.Append(ctx, &model.ChequeLogEntry{
		ChequeID: id,
		Status:   next,
		Sayyadi:  cheque.Sayyadi,
		Comment:  req.Comment,
	})
	if err != nil {
		return nil, err
	}

	if next == model.ChequeRejected && s.dispatcher != nil {
		// Best-effort — a lost notice never fails the status change.
		if err := s.dispatcher.EnqueueNotice(ctx, worker.ChequeNoticePayload{
			ChequeID:  id.String(),
			ManagerID: cheque.ManagerID.String(),
			Number:    cheque.Number,
			Status:    string(next),
			Comment:   req.Comment,
		}); err != nil {
			log.Warn().Err(err).Str("cheque", cheque.Number).Msg("cheque: notice enqueue failed")
		}
	}

	resp := logToResponse(entry)
	return &resp, nil
}

// ── ToggleSayyadi ────────────────────────────────────────────────────────────
// Sayyadi is a regulatory flag independent of lifecycle status: togglable
// from any state, terminal or not. Still appends one audit entry.

func (s *chequeService) ToggleSayyadi(ctx context.Context, id uuid.UUID, req dto.ToggleSayyadiRequest) (*dto.ChequeLogResponse, error) {
	cheque, err := s.cheques.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cheques.UpdateSayyadi(ctx, id, req.Sayyadi); err != nil {
		return nil, err
	}

	comment := req.Comment
	if comment == "" {
		if req.Sayyadi {
			comment = "sayyadi flag set"
		} else {
			comment = "sayyadi flag cleared"
		}
	}
	entry, err := s.logs.Append(ctx, &model.ChequeLogEntry{
		ChequeID: id,
		Status:   cheque.Status,
		Sayyadi:  req.Sayyadi,
		Comment:  comment,
	})
	if err != nil {
		return nil, err
	}
	resp := logToResponse(entry)
	return &resp, nil
}

// historyPageSize drains the audit log in one page; cheques accumulate at
// most a handful of entries.
const historyPageSize = 100

func (s *chequeService) History(ctx context.Context, scope model.Scope, id uuid.UUID) ([]dto.ChequeLogResponse, error) {
	cheque, err := s.cheques.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(cheque.CustomerID) {
		// Same masking as Get: the audit log of a restricted cheque is absent.
		return nil, apperr.New(apperr.KindNotFound, "cheque not found")
	}
	entries, _, err := s.logs.ListByCheque(ctx, id, gateway.Page{Size: historyPageSize})
	if err != nil {
		return nil, err
	}
	// Most recent first, regardless of upstream ordering.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	out := make([]dto.ChequeLogResponse, 0, len(entries))
	for i := range entries {
		out = append(out, logToResponse(&entries[i]))
	}
	return out, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *chequeService) List(ctx context.Context, scope model.Scope, filter dto.ChequeFilter) (*dto.ChequeListResponse, error) {
	var base []uuid.UUID
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "customer_id is not a valid id")
		}
		base = []uuid.UUID{id}
	}
	ids, none := ApplyScope(scope, base)
	if none {
		return &dto.ChequeListResponse{Data: []dto.ChequeResponse{}, Count: 0}, nil
	}

	q := gateway.ChequeQuery{
		Number:      jalali.ToASCIIDigits(filter.Number),
		MinPrice:    filter.MinPrice,
		MaxPrice:    filter.MaxPrice,
		Status:      filter.Status,
		Bank:        filter.Bank,
		CustomerIDs: ids,
	}
	for _, bound := range []struct {
		raw string
		dst *string
	}{{filter.DateFrom, &q.DateFrom}, {filter.DateTo, &q.DateTo}} {
		if bound.raw == "" {
			continue
		}
		key := jalali.DateKey(jalali.ToASCIIDigits(bound.raw))
		if !jalali.Validate(key) {
			return nil, apperr.Newf(apperr.KindValidation, "date bound %q is not a valid date", bound.raw)
		}
		*bound.dst = string(key)
	}

	cheques, count, err := s.cheques.List(ctx, q, gateway.Page{Index: filter.PageIndex, Size: filter.PageSize})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChequeResponse, 0, len(cheques))
	for i := range cheques {
		items = append(items, dto.NewChequeResponse(&cheques[i]))
	}
	return &dto.ChequeListResponse{Data: items, Count: count}, nil
}

func (s *chequeService) Get(ctx context.Context, scope model.Scope, id uuid.UUID) (*dto.ChequeResponse, error) {
	cheque, err := s.cheques.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(cheque.CustomerID) {
		// Scoped callers see a restricted cheque as absent, not forbidden.
		return nil, apperr.New(apperr.KindNotFound, "cheque not found")
	}
	resp := dto.NewChequeResponse(cheque)
	return &resp, nil
}

func (s *chequeService) appendLog(ctx context.Context, c *model.Cheque, comment string) {
	if _, err := s.logs.Append(ctx, &model.ChequeLogEntry{
		ChequeID: c.ID,
		Status:   c.Status,
		Sayyadi:  c.Sayyadi,
		Comment:  comment,
	}); err != nil {
		log.Error().Err(err).Str("cheque", c.Number).Msg("cheque: initial audit entry failed")
	}
}

func logToResponse(e *model.ChequeLogEntry) dto.ChequeLogResponse {
	return dto.ChequeLogResponse{
		ID:        e.ID.String(),
		ChequeID:  e.ChequeID.String(),
		Status:    string(e.Status),
		Sayyadi:   e.Sayyadi,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
