package handler

import (
	"net/http"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ChequesHandler struct {
	svc    service.ChequeService
	scopes service.ScopeService
}

func NewChequesHandler(svc service.ChequeService, scopes service.ScopeService) *ChequesHandler {
	return &ChequesHandler{svc: svc, scopes: scopes}
}

// Create godoc
// @Summary      Register a cheque
// @Description  Registers a bank cheque in status "created" and writes the first audit entry.
// @Tags         cheques
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateChequeRequest true "Cheque details"
// @Success      201  {object} dto.ChequeResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cheques [post]
func (h *ChequesHandler) Create(c *gin.Context) {
	var req dto.CreateChequeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateStatus godoc
// @Summary      Change cheque status
// @Description  Moves a cheque out of "created". Passed, rejected and canceled are terminal; a second change is refused.
// @Tags         cheques
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Cheque UUID"
// @Param        body body dto.UpdateChequeStatusRequest true "Target status and comment"
// @Success      200  {object} dto.ChequeLogResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/cheques/{id}/status [put]
func (h *ChequesHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateChequeStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleSayyadi godoc
// @Summary      Toggle the sayyadi flag
// @Description  Sets or clears sayyadi registration. Allowed in any status, including terminal ones.
// @Tags         cheques
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Cheque UUID"
// @Param        body body dto.ToggleSayyadiRequest true "Flag value"
// @Success      200  {object} dto.ChequeLogResponse
// @Router       /v1/cheques/{id}/sayyadi [put]
func (h *ChequesHandler) ToggleSayyadi(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.ToggleSayyadiRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ToggleSayyadi(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary      Cheque audit log
// @Description  Returns every audit entry for the cheque, most recent first.
// @Tags         cheques
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Cheque UUID"
// @Success      200 {array} dto.ChequeLogResponse
// @Router       /v1/cheques/{id}/history [get]
func (h *ChequesHandler) History(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	resp, err := h.svc.History(c.Request.Context(), scope, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List cheques
// @Description  Paginated cheque list narrowed by filter and by the caller's customer scope.
// @Tags         cheques
// @Produce      json
// @Security     BearerAuth
// @Param        number     query string false "Cheque number"
// @Param        date_from  query string false "Jalali date key YYYYMMDD"
// @Param        date_to    query string false "Jalali date key YYYYMMDD"
// @Param        status     query string false "created | passed | rejected | canceled"
// @Param        bank       query string false "Bank code"
// @Param        page_index query int    false "Page (default 0)"
// @Param        page_size  query int    false "Rows per page (default 20)"
// @Success      200 {object} dto.ChequeListResponse
// @Router       /v1/cheques [get]
func (h *ChequesHandler) List(c *gin.Context) {
	var filter dto.ChequeFilter
	if !bindQuery(c, &filter) {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), scope, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Fetch one cheque
// @Tags         cheques
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Cheque UUID"
// @Success      200 {object} dto.ChequeResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cheques/{id} [get]
func (h *ChequesHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	scope, ok := callerScope(c, h.scopes)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), scope, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
