package infra

// pdf.go — settlement statement generation using go-pdf/fpdf.
// Produces an A5 statement per factor: header, totals block, one row per
// settlement item (cheque or cash transaction). The output file is saved to
// storagePath/statement_{factorID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// StatementLine is one settlement row on the printed statement.
type StatementLine struct {
	Kind      string // "cheque" or "cash"
	Reference string // cheque number or tracking code
	Detail    string // bank + status, or payment date
	Amount    int64  // rials
}

// CoverageStatement carries everything the statement PDF needs, already
// formatted for display except the rial amounts.
type CoverageStatement struct {
	FactorID       string
	CustomerName   string
	DateFa         string // factor date in local digits
	TotalAmount    int64
	Coverage       int64
	PassedCoverage int64
	Remaining      int64
	PercentLabel   string // e.g. "70%"
	Lines          []StatementLine
}

// GenerateCoveragePDF writes the settlement statement and returns the
// absolute path of the generated file.
func GenerateCoveragePDF(st *CoverageStatement, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("statement_%s.pdf", st.FactorID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Settlement Statement", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, st.CustomerName, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Factor %s — %s", st.FactorID, st.DateFa), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.55
	valueW := contentW * 0.45

	totals := []struct {
		label  string
		amount int64
	}{
		{"Invoice total:", st.TotalAmount},
		{"Covered (all instruments):", st.Coverage},
		{"Covered (cleared only):", st.PassedCoverage},
		{"Remaining:", st.Remaining},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range totals {
		pdf.CellFormat(labelW, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, formatRials(row.amount), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelW, 7, "Coverage:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, st.PercentLabel, "", 1, "R", false, 0, "")
	pdf.Ln(3)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(3)

	// ── Settlement items ─────────────────────────────────────────────────────
	col1 := contentW * 0.14 // kind
	col2 := contentW * 0.26 // reference
	col3 := contentW * 0.32 // detail
	col4 := contentW * 0.28 // amount

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Reference", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Detail", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, line := range st.Lines {
		pdf.CellFormat(col1, 6, line.Kind, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, line.Reference, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, line.Detail, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, formatRials(line.Amount), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// formatRials renders an amount with thousands separators and the IRR unit.
func formatRials(v int64) string {
	s := fmt.Sprintf("%d", v)
	n := len(s)
	if n <= 3 {
		return s + " IRR"
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out) + " IRR"
}
