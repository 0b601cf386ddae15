package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReconcileService settles factors against cheques and cash transactions.
// The one structural invariant it owns: a cheque id appears in at most one
// factor link at any time.
type ReconcileService interface {
	AssignCheque(ctx context.Context, factorID, chequeID uuid.UUID) (*dto.FactorChequeResponse, error)
	AssignNewCheque(ctx context.Context, factorID uuid.UUID, req dto.AssignNewChequeRequest) (*dto.FactorChequeResponse, error)
	UnassignCheque(ctx context.Context, factorID, chequeID uuid.UUID) error
	RecordCashTransaction(ctx context.Context, factorID uuid.UUID, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	ComputeCoverage(ctx context.Context, scope model.Scope, factorID uuid.UUID) (*dto.CoverageResponse, error)
	GetFactor(ctx context.Context, scope model.Scope, id uuid.UUID) (*dto.FactorResponse, error)
	ListFactors(ctx context.Context, scope model.Scope, filter dto.FactorFilter) (*dto.FactorListResponse, error)
}

type reconcileService struct {
	factors      gateway.FactorGateway
	factorCheque gateway.FactorChequeGateway
	cheques      gateway.ChequeGateway
	transactions gateway.TransactionGateway
	chequeSvc    ChequeService
}

func NewReconcileService(
	factors gateway.FactorGateway,
	factorCheque gateway.FactorChequeGateway,
	cheques gateway.ChequeGateway,
	transactions gateway.TransactionGateway,
	chequeSvc ChequeService,
) ReconcileService {
	return &reconcileService{
		factors:      factors,
		factorCheque: factorCheque,
		cheques:      cheques,
		transactions: transactions,
		chequeSvc:    chequeSvc,
	}
}

// ── Assignment ───────────────────────────────────────────────────────────────

func (s *reconcileService) AssignCheque(ctx context.Context, factorID, chequeID uuid.UUID) (*dto.FactorChequeResponse, error) {
	if _, err := s.factors.FindByID(ctx, factorID); err != nil {
		return nil, err
	}
	if _, err := s.cheques.FindByID(ctx, chequeID); err != nil {
		return nil, err
	}

	existing, err := s.factorCheque.FindByCheque(ctx, chequeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Linked anywhere — even to this same factor — means no new link.
		return nil, apperr.Newf(apperr.KindConflict,
			"cheque is already assigned to factor %s", existing.FactorID)
	}

	link, err := s.factorCheque.Create(ctx, factorID, chequeID)
	if err != nil {
		return nil, err
	}
	return linkToResponse(link), nil
}

// AssignNewCheque creates the cheque and links it in one operation. When the
// link step fails the cheque is deleted again so no orphan survives; a failed
// compensation is logged loudly and left for manual cleanup.
func (s *reconcileService) AssignNewCheque(ctx context.Context, factorID uuid.UUID, req dto.AssignNewChequeRequest) (*dto.FactorChequeResponse, error) {
	if _, err := s.factors.FindByID(ctx, factorID); err != nil {
		return nil, err
	}

	cheque, err := s.chequeSvc.Create(ctx, req.Cheque)
	if err != nil {
		return nil, err
	}
	chequeID, err := uuid.Parse(cheque.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransport, "data service returned a malformed cheque id", err)
	}

	link, err := s.factorCheque.Create(ctx, factorID, chequeID)
	if err != nil {
		if delErr := s.cheques.Delete(ctx, chequeID); delErr != nil {
			log.Error().Err(delErr).
				Str("cheque_id", cheque.ID).
				Str("factor_id", factorID.String()).
				Msg("reconcile: compensation delete failed, cheque orphaned")
		}
		return nil, err
	}
	return linkToResponse(link), nil
}

func (s *reconcileService) UnassignCheque(ctx context.Context, factorID, chequeID uuid.UUID) error {
	factor, err := s.factors.FindByID(ctx, factorID)
	if err != nil {
		return err
	}
	if factor.Status.FinanceApproved() {
		return apperr.New(apperr.KindInvalidState,
			"factor is approved by finance; its cheques can no longer be detached")
	}

	link, err := s.factorCheque.FindByCheque(ctx, chequeID)
	if err != nil {
		return err
	}
	if link == nil || link.FactorID != factorID {
		return apperr.New(apperr.KindNotFound, "cheque is not assigned to this factor")
	}
	return s.factorCheque.Delete(ctx, link.ID)
}

// ── Cash transactions ────────────────────────────────────────────────────────

func (s *reconcileService) RecordCashTransaction(ctx context.Context, factorID uuid.UUID, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	factor, err := s.factors.FindByID(ctx, factorID)
	if err != nil {
		return nil, err
	}
	if factor.PaymentMethod != model.PaymentCash {
		return nil, apperr.New(apperr.KindInvalidState,
			"cash transactions can only be recorded on cash-method factors")
	}

	amount, err := parseRialAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	date := jalali.DateKey(jalali.ToASCIIDigits(req.Date))
	if !jalali.Validate(date) {
		return nil, apperr.Newf(apperr.KindValidation, "transaction date %q is not a valid date", req.Date)
	}
	createdAt, err := jalali.ToUnixSeconds(date)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "transaction date %q is not a valid date", req.Date)
	}

	created, err := s.transactions.Create(ctx, &model.Transaction{
		FactorID:     factorID,
		CustomerID:   factor.CustomerID,
		TrackingCode: jalali.ToASCIIDigits(req.TrackingCode),
		Amount:       amount,
		Method:       model.PaymentCash,
		CreatedAt:    createdAt,
	})
	if err != nil {
		return nil, err
	}
	resp := transactionToResponse(created)
	return &resp, nil
}

// parseRialAmount transcodes local numeral glyphs, strips thousands
// separators and requires a positive integer.
func parseRialAmount(raw string) (int64, error) {
	cleaned := jalali.ToASCIIDigits(raw)
	cleaned = strings.NewReplacer(",", "", "٬", "", " ", "").Replace(cleaned)
	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, apperr.Newf(apperr.KindValidation, "amount %q is not a number", raw)
	}
	if amount <= 0 {
		return 0, apperr.New(apperr.KindValidation, "amount must be positive")
	}
	return amount, nil
}

// ── Coverage ─────────────────────────────────────────────────────────────────

// ComputeCoverage sums every linked cheque (any status) plus all cash
// transactions as nominal coverage; passed coverage restricts cheques to
// status "passed". Remaining never goes negative and the percent is rounded
// to a whole number.
func (s *reconcileService) ComputeCoverage(ctx context.Context, scope model.Scope, factorID uuid.UUID) (*dto.CoverageResponse, error) {
	factor, err := s.factors.FindByID(ctx, factorID)
	if err != nil {
		return nil, err
	}
	// Out-of-scope factors read as absent, same as GetFactor.
	if !scope.Allows(factor.CustomerID) {
		return nil, apperr.New(apperr.KindNotFound, "factor not found")
	}

	links, err := s.factorCheque.ListByFactor(ctx, factorID)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactions.ListByFactor(ctx, factorID)
	if err != nil {
		return nil, err
	}

	cheques := make([]*model.Cheque, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			c, err := s.cheques.FindByID(gctx, link.ChequeID)
			if err != nil {
				return err
			}
			cheques[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var coverage, passed int64
	chequeResponses := make([]dto.ChequeResponse, 0, len(cheques))
	for _, c := range cheques {
		coverage += c.FaceAmount
		if c.Status == model.ChequePassed {
			passed += c.FaceAmount
		}
		chequeResponses = append(chequeResponses, dto.NewChequeResponse(c))
	}

	txResponses := make([]dto.TransactionResponse, 0, len(txs))
	sort.Slice(txs, func(i, j int) bool { return txs[i].CreatedAt < txs[j].CreatedAt })
	for i := range txs {
		coverage += txs[i].Amount
		txResponses = append(txResponses, transactionToResponse(&txs[i]))
	}

	remaining := factor.TotalAmount - coverage
	if remaining < 0 {
		remaining = 0
	}

	percent := decimal.Zero
	if factor.TotalAmount > 0 {
		percent = decimal.NewFromInt(coverage).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(factor.TotalAmount)).
			Round(0)
	}

	return &dto.CoverageResponse{
		FactorID:        factor.ID.String(),
		TotalAmount:     factor.TotalAmount,
		Coverage:        coverage,
		PassedCoverage:  passed,
		Remaining:       remaining,
		CoveragePercent: percent,
		Cheques:         chequeResponses,
		Transactions:    txResponses,
	}, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *reconcileService) GetFactor(ctx context.Context, scope model.Scope, id uuid.UUID) (*dto.FactorResponse, error) {
	factor, err := s.factors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(factor.CustomerID) {
		return nil, apperr.New(apperr.KindNotFound, "factor not found")
	}
	resp := factorToResponse(factor)
	return &resp, nil
}

func (s *reconcileService) ListFactors(ctx context.Context, scope model.Scope, filter dto.FactorFilter) (*dto.FactorListResponse, error) {
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
		return &dto.FactorListResponse{Data: []dto.FactorResponse{}, Count: 0}, nil
	}

	factors, count, err := s.factors.List(ctx, gateway.FactorQuery{
		Status:        filter.Status,
		PaymentMethod: filter.PaymentMethod,
		CustomerIDs:   ids,
	}, gateway.Page{Index: filter.PageIndex, Size: filter.PageSize})
	if err != nil {
		return nil, err
	}
	items := make([]dto.FactorResponse, 0, len(factors))
	for i := range factors {
		items = append(items, factorToResponse(&factors[i]))
	}
	return &dto.FactorListResponse{Data: items, Count: count}, nil
}

func linkToResponse(l *model.FactorCheque) *dto.FactorChequeResponse {
	return &dto.FactorChequeResponse{
		ID:       l.ID.String(),
		FactorID: l.FactorID.String(),
		ChequeID: l.ChequeID.String(),
	}
}

func transactionToResponse(t *model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           t.ID.String(),
		FactorID:     t.FactorID.String(),
		CustomerID:   t.CustomerID.String(),
		TrackingCode: t.TrackingCode,
		Amount:       t.Amount,
		Method:       string(t.Method),
		CreatedAt:    t.CreatedAt,
	}
}

func factorToResponse(f *model.Factor) dto.FactorResponse {
	return dto.FactorResponse{
		ID:            f.ID.String(),
		CustomerID:    f.CustomerID.String(),
		CreatorID:     f.CreatorID.String(),
		PaymentMethod: string(f.PaymentMethod),
		Status:        string(f.Status),
		TotalAmount:   f.TotalAmount,
		Date:          string(f.Date),
		CreatedAt:     f.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
