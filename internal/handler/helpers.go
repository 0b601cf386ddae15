package handler

import (
	"errors"
	"net/http"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apierror"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/middleware"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails — the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps a service error to its HTTP response through the error
// taxonomy. Transport failures get a generic body so upstream details never
// reach the client.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err) // surfaces in the request log
	kind := apperr.KindOf(err)
	status := apierror.StatusFor(kind)
	var ae *apperr.Error
	if status < http.StatusInternalServerError && errors.As(err, &ae) {
		c.AbortWithStatusJSON(status, apierror.New(ae.Msg))
		return
	}
	c.AbortWithStatusJSON(status, apierror.New(http.StatusText(status)))
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// callerScope resolves the caller's customer visibility from their claims.
func callerScope(c *gin.Context, scopes service.ScopeService) (model.Scope, bool) {
	_, scope, ok := callerIdentity(c, scopes)
	return scope, ok
}

// callerIdentity is callerScope plus the employee id, for per-caller state.
func callerIdentity(c *gin.Context, scopes service.ScopeService) (uuid.UUID, model.Scope, bool) {
	claims := middleware.GetClaims(c)
	employeeID, err := claims.ParsedEmployeeID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token carries no valid employee id"))
		return uuid.Nil, model.Scope{}, false
	}
	scope, err := scopes.ResolveScope(c.Request.Context(), model.Role(claims.Role), employeeID)
	if err != nil {
		writeError(c, err)
		return uuid.Nil, model.Scope{}, false
	}
	return employeeID, scope, true
}
