package handler

import (
	"fmt"
	"net/http"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FactorsHandler struct {
	reconciler service.ReconcileService
	reports    service.ReportService
	scopes     service.ScopeService
}

func NewFactorsHandler(reconciler service.ReconcileService, reports service.ReportService, scopes service.ScopeService) *FactorsHandler {
	return &FactorsHandler{reconciler: reconciler, reports: reports, scopes: scopes}
}

// List godoc
// @Summary      List factors
// @Description  Paginated invoice list narrowed by filter and by the caller's customer scope.
// @Tags         factors
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id    query string false "Customer UUID"
// @Param        status         query string false "Factor status"
// @Param        payment_method query string false "cash | cheque"
// @Param        page_index     query int    false "Page (default 0)"
// @Param        page_size      query int    false "Rows per page (default 20)"
// @Success      200 {object} dto.FactorListResponse
// @Router       /v1/factors [get]
func (h *FactorsHandler) List(c *gin.Context) {
	var filter dto.FactorFilter
	if !bindQuery(c, &filter) {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	resp, err := h.reconciler.ListFactors(c.Request.Context(), scope, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Fetch one factor
// @Tags         factors
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Factor UUID"
// @Success      200 {object} dto.FactorResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/factors/{id} [get]
func (h *FactorsHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	resp, err := h.reconciler.GetFactor(c.Request.Context(), scope, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Coverage godoc
// @Summary      Factor coverage
// @Description  Sums linked cheques and cash transactions against the invoice total.
// @Tags         factors
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Factor UUID"
// @Success      200 {object} dto.CoverageResponse
// @Router       /v1/factors/{id}/coverage [get]
func (h *FactorsHandler) Coverage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	resp, err := h.reconciler.ComputeCoverage(c.Request.Context(), scope, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AssignCheque godoc
// @Summary      Attach an existing cheque
// @Description  Links a registered cheque to the factor. A cheque linked anywhere else is refused with 409.
// @Tags         factors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Factor UUID"
// @Param        body body dto.AssignChequeRequest true "Cheque reference"
// @Success      201  {object} dto.FactorChequeResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/factors/{id}/cheques [post]
func (h *FactorsHandler) AssignCheque(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.AssignChequeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	chequeID, _ := uuid.Parse(req.ChequeID) // validated by the uuid tag
	resp, err := h.reconciler.AssignCheque(c.Request.Context(), id, chequeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AssignNewCheque godoc
// @Summary      Register and attach a cheque in one call
// @Description  Creates the cheque and links it atomically; if linking fails the cheque is removed again.
// @Tags         factors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Factor UUID"
// @Param        body body dto.AssignNewChequeRequest true "Cheque details"
// @Success      201  {object} dto.FactorChequeResponse
// @Router       /v1/factors/{id}/cheques/new [post]
func (h *FactorsHandler) AssignNewCheque(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.AssignNewChequeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reconciler.AssignNewCheque(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UnassignCheque godoc
// @Summary      Detach a cheque
// @Description  Removes the link between factor and cheque. Refused once the factor is finance-approved.
// @Tags         factors
// @Produce      json
// @Security     BearerAuth
// @Param        id        path string true "Factor UUID"
// @Param        chequeId  path string true "Cheque UUID"
// @Success      204
// @Failure      422 {object} apierror.APIError
// @Router       /v1/factors/{id}/cheques/{chequeId} [delete]
func (h *FactorsHandler) UnassignCheque(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	chequeID, err := uuid.Parse(c.Param("chequeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid cheque id"})
		return
	}
	if err := h.reconciler.UnassignCheque(c.Request.Context(), id, chequeID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordTransaction godoc
// @Summary      Record a cash payment
// @Description  Records a cash transaction against a cash-method factor.
// @Tags         factors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Factor UUID"
// @Param        body body dto.CreateTransactionRequest true "Payment details"
// @Success      201  {object} dto.TransactionResponse
// @Router       /v1/factors/{id}/transactions [post]
func (h *FactorsHandler) RecordTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reconciler.RecordCashTransaction(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// StatementPDF godoc
// @Summary      Settlement statement PDF
// @Description  Renders the settlement statement for one factor and streams the file.
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Factor UUID"
// @Success      200
// @Router       /v1/factors/{id}/statement.pdf [get]
func (h *FactorsHandler) StatementPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	path, err := h.reports.CoverageStatementPDF(c.Request.Context(), scope, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=statement_%s.pdf", id))
	c.File(path)
}
