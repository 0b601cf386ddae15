package handler

import (
	"net/http"
	"strings"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apierror"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomersHandler struct {
	svc    service.CustomerService
	scopes service.ScopeService
}

func NewCustomersHandler(svc service.CustomerService, scopes service.ScopeService) *CustomersHandler {
	return &CustomersHandler{svc: svc, scopes: scopes}
}

// List godoc
// @Summary      List customers
// @Description  Paginated customer list narrowed by filter and by the caller's scope. National codes may carry local numeral glyphs.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        name          query string false "Name fragment"
// @Param        national_code query string false "National code"
// @Param        city          query string false "City"
// @Param        page_index    query int    false "Page (default 0)"
// @Param        page_size     query int    false "Rows per page (default 20)"
// @Success      200 {object} dto.CustomerListResponse
// @Router       /v1/customers [get]
func (h *CustomersHandler) List(c *gin.Context) {
	var filter dto.CustomerFilter
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

// Typeahead godoc
// @Summary      Customer type-ahead
// @Description  Debounced name lookup for interactive pickers. Rapid calls from the same operator coalesce into one upstream query and the response always reflects the newest one; pass flush=true on enter to skip the debounce wait.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        q     query string true  "Name fragment"
// @Param        flush query bool   false "Run immediately"
// @Success      200 {object} dto.CustomerTypeaheadResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/customers/typeahead [get]
func (h *CustomersHandler) Typeahead(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, apierror.New("q is required"))
		return
	}
	callerID, scope, ok := callerIdentity(c, h.scopes)
	if !ok {
		return
	}
	flush := c.Query("flush") == "true"
	resp, err := h.svc.Typeahead(c.Request.Context(), scope, callerID, query, flush)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Fetch one customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer UUID"
// @Success      200 {object} dto.CustomerResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/customers/{id} [get]
func (h *CustomersHandler) Get(c *gin.Context) {
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
