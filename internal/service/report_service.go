package service

import (
	"context"
	"fmt"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ReportService renders operator-facing exports: a per-factor settlement
// statement PDF and a cheque book spreadsheet.
type ReportService interface {
	// CoverageStatementPDF renders the settlement statement for one factor
	// and returns the path of the generated file.
	CoverageStatementPDF(ctx context.Context, scope model.Scope, factorID uuid.UUID) (string, error)
	// ChequeBookXLSX streams a spreadsheet of the cheques visible to the
	// caller's scope, honoring the same filter as the list endpoint.
	ChequeBookXLSX(ctx context.Context, scope model.Scope, filter dto.ChequeFilter) (*excelize.File, error)
}

type reportService struct {
	reconciler  ReconcileService
	chequeSvc   ChequeService
	customers   gateway.CustomerGateway
	storagePath string
}

func NewReportService(
	reconciler ReconcileService,
	chequeSvc ChequeService,
	customers gateway.CustomerGateway,
	storagePath string,
) ReportService {
	return &reportService{
		reconciler:  reconciler,
		chequeSvc:   chequeSvc,
		customers:   customers,
		storagePath: storagePath,
	}
}

func (s *reportService) CoverageStatementPDF(ctx context.Context, scope model.Scope, factorID uuid.UUID) (string, error) {
	cov, err := s.reconciler.ComputeCoverage(ctx, scope, factorID)
	if err != nil {
		return "", err
	}
	factor, err := s.reconciler.GetFactor(ctx, scope, factorID)
	if err != nil {
		return "", err
	}

	customerName := ""
	if id, parseErr := uuid.Parse(factor.CustomerID); parseErr == nil {
		if customer, findErr := s.customers.FindByID(ctx, id); findErr == nil {
			customerName = customer.FullName()
		}
	}

	lines := make([]infra.StatementLine, 0, len(cov.Cheques)+len(cov.Transactions))
	for _, c := range cov.Cheques {
		lines = append(lines, infra.StatementLine{
			Kind:      "cheque",
			Reference: c.Number,
			Detail:    fmt.Sprintf("%s / %s", c.Bank, c.Status),
			Amount:    c.FaceAmount,
		})
	}
	for _, t := range cov.Transactions {
		lines = append(lines, infra.StatementLine{
			Kind:      "cash",
			Reference: t.TrackingCode,
			Detail:    "cash payment",
			Amount:    t.Amount,
		})
	}

	st := &infra.CoverageStatement{
		FactorID:       cov.FactorID,
		CustomerName:   customerName,
		DateFa:         jalali.ToLocalDigits(jalali.ToDisplay(jalali.DateKey(factor.Date))),
		TotalAmount:    cov.TotalAmount,
		Coverage:       cov.Coverage,
		PassedCoverage: cov.PassedCoverage,
		Remaining:      cov.Remaining,
		PercentLabel:   cov.CoveragePercent.String() + "%",
		Lines:          lines,
	}
	path, err := infra.GenerateCoveragePDF(st, s.storagePath)
	if err != nil {
		return "", apperr.Wrap(apperr.KindTransport, "statement rendering failed", err)
	}
	return path, nil
}

var chequeBookHeaders = []string{
	"Number", "Issue Date", "Amount (IRR)", "Bank", "Status", "Sayyadi", "Customer", "Created",
}

func (s *reportService) ChequeBookXLSX(ctx context.Context, scope model.Scope, filter dto.ChequeFilter) (*excelize.File, error) {
	// Exports drain up to one maximal page; callers narrow by filter first.
	filter.PageIndex = 0
	filter.PageSize = 100
	list, err := s.chequeSvc.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Cheques"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransport, "spreadsheet rendering failed", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range chequeBookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	// Customer names are repeated across rows; resolve each id once.
	names := map[string]string{}
	for i, c := range list.Data {
		row := i + 2
		name, ok := names[c.CustomerID]
		if !ok {
			if id, parseErr := uuid.Parse(c.CustomerID); parseErr == nil {
				if customer, findErr := s.customers.FindByID(ctx, id); findErr == nil {
					name = customer.FullName()
				}
			}
			names[c.CustomerID] = name
		}

		sayyadi := "no"
		if c.Sayyadi {
			sayyadi = "yes"
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.Number)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.IssueDateFa)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), c.FaceAmount)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), c.Bank)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), c.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), sayyadi)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), c.CreatedAt)
	}
	return f, nil
}
