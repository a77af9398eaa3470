package handler

import (
	"net/http"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/service"
	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	forecastService *service.ForecastService
}

func NewForecastHandler(forecastService *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// MonthlyPlot handles POST /forecast/monthly-plot
func (h *ForecastHandler) MonthlyPlot(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	resp, err := h.forecastService.MonthlyPlot(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Monthly handles POST /forecast/monthly
func (h *ForecastHandler) Monthly(c *gin.Context) {
	var req dto.MonthlyForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.forecastService.PredictMonth(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Yearly handles POST /forecast/yearly
func (h *ForecastHandler) Yearly(c *gin.Context) {
	var req dto.YearlyForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.forecastService.PredictYear(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Category handles POST /forecast/category
func (h *ForecastHandler) Category(c *gin.Context) {
	var req dto.CategoryForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.forecastService.PredictCategory(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
