package handler

import (
	"net/http"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/service"
	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	svc *service.EmployeeService
}

func NewEmployeeHandler(svc *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) Details(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	resp, err := h.svc.Details(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeeHandler) NetWorth(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	resp, err := h.svc.NetWorth(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeeHandler) CTCChart(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	chart, err := h.svc.CTCChart(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChartResponse{EmployeeID: employeeID, Chart: chart})
}

// ManageDebt handles POST /employee/manage-debt
func (h *EmployeeHandler) ManageDebt(c *gin.Context) {
	var req dto.DebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.ManageDebt(c.Request.Context(), req.ID(), req.DebtAmount)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
