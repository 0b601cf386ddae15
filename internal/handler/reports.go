package handler

import (
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	reports service.ReportService
	scopes  service.ScopeService
}

func NewReportsHandler(reports service.ReportService, scopes service.ScopeService) *ReportsHandler {
	return &ReportsHandler{reports: reports, scopes: scopes}
}

// ChequeBookXLSX godoc
// @Summary      Export cheques as a spreadsheet
// @Description  Streams an XLSX of the cheques visible to the caller, honoring the same filters as the cheque list.
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Router       /v1/reports/cheques.xlsx [get]
func (h *ReportsHandler) ChequeBookXLSX(c *gin.Context) {
	var filter dto.ChequeFilter
	if !bindQuery(c, &filter) {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	f, err := h.reports.ChequeBookXLSX(c.Request.Context(), scope, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=cheques.xlsx")
	if err := f.Write(c.Writer); err != nil {
		writeError(c, err)
	}
}
