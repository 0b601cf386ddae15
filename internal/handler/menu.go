package handler

import (
	"net/http"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/middleware"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	scopes service.ScopeService
}

func NewMenuHandler(scopes service.ScopeService) *MenuHandler {
	return &MenuHandler{scopes: scopes}
}

// Sections godoc
// @Summary      Console sections for the caller
// @Description  Returns the navigation sections the caller's role may see.
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /v1/menu [get]
func (h *MenuHandler) Sections(c *gin.Context) {
	claims := middleware.GetClaims(c)
	sections := h.scopes.VisibleSections(model.Role(claims.Role))
	c.JSON(http.StatusOK, gin.H{
		"role":     claims.Role,
		"sections": sections,
	})
}
