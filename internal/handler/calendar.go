package handler

import (
	"net/http"
	"strconv"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apierror"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct{}

func NewCalendarHandler() *CalendarHandler { return &CalendarHandler{} }

// MonthGrid godoc
// @Summary      Jalali month grid
// @Description  Returns the fixed 42-cell date-picker grid for one Jalali month, padded with the neighbor months.
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        year  path int true "Jalali year (1300–1500)"
// @Param        month path int true "Jalali month (1–12)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apierror.APIError
// @Router       /v1/calendar/{year}/{month} [get]
func (h *CalendarHandler) MonthGrid(c *gin.Context) {
	year, err := strconv.Atoi(jalali.ToASCIIDigits(c.Param("year")))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid year"))
		return
	}
	month, err := strconv.Atoi(jalali.ToASCIIDigits(c.Param("month")))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid month"))
		return
	}

	grid, err := jalali.MonthGrid(year, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"today": string(jalali.Today()),
		"cells": grid,
	})
}
