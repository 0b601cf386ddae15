package handler

import (
	"net/http"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RelationsHandler struct {
	svc service.RelationService
}

func NewRelationsHandler(svc service.RelationService) *RelationsHandler {
	return &RelationsHandler{svc: svc}
}

// Create godoc
// @Summary      Assign a customer to a manager
// @Description  Creates one customer↔manager relation. An existing pair is refused with 409.
// @Tags         relations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateRelationRequest true "Relation pair"
// @Success      201  {object} dto.RelationResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/relations [post]
func (h *RelationsHandler) Create(c *gin.Context) {
	var req dto.CreateRelationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	customerID, _ := uuid.Parse(req.CustomerID)
	managerID, _ := uuid.Parse(req.ManagerID)

	relation, err := h.svc.Create(c.Request.Context(), customerID, managerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RelationResponse{
		ID:         relation.ID.String(),
		CustomerID: relation.CustomerID.String(),
		ManagerID:  relation.ManagerID.String(),
		CreatedAt:  relation.CreatedAt.Format("2006-01-02T15:04:05Z"),
	})
}

// Delete godoc
// @Summary      Remove a relation
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id query string true "Customer UUID"
// @Param        manager_id  query string true "Manager UUID"
// @Success      204
// @Router       /v1/relations [delete]
func (h *RelationsHandler) Delete(c *gin.Context) {
	customerID, err := uuid.Parse(c.Query("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid customer_id"})
		return
	}
	managerID, err := uuid.Parse(c.Query("manager_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid manager_id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), customerID, managerID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List godoc
// @Summary      List relations
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        manager_id query string false "Manager UUID"
// @Param        name       query string false "Customer name"
// @Param        page_index query int    false "Page (default 0)"
// @Param        page_size  query int    false "Rows per page (default 20)"
// @Success      200 {object} dto.RelationListResponse
// @Router       /v1/relations [get]
func (h *RelationsHandler) List(c *gin.Context) {
	var filter dto.RelationFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BulkAssign godoc
// @Summary      Assign many customers at once
// @Description  Creates relations for every listed customer. Duplicates count separately and never fail the batch; the batch succeeds when at least one pair was created or already existed.
// @Tags         relations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.BulkAssignRequest true "Manager and customer list"
// @Success      200  {object} dto.BulkAssignResponse
// @Router       /v1/relations/bulk [post]
func (h *RelationsHandler) BulkAssign(c *gin.Context) {
	var req dto.BulkAssignRequest
	if !bindAndValidate(c, &req) {
		return
	}
	managerID, _ := uuid.Parse(req.ManagerID)
	customerIDs := make([]uuid.UUID, 0, len(req.CustomerIDs))
	for _, raw := range req.CustomerIDs {
		id, _ := uuid.Parse(raw) // validated by the dive,uuid tag
		customerIDs = append(customerIDs, id)
	}

	resp, err := h.svc.BulkAssign(c.Request.Context(), managerID, customerIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
