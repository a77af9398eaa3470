package handler

import (
	"fmt"
	"net/http"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/service"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// bindEmployee reads {"employee_id": n} (or emp_id) from the body.
func bindEmployee(c *gin.Context) (int, bool) {
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return 0, false
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return 0, false
	}
	return req.ID(), true
}

func (h *ExpenseHandler) breakdown(groupBy string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, ok := bindEmployee(c)
		if !ok {
			return
		}

		resp, err := h.expenseService.Breakdown(c.Request.Context(), employeeID, groupBy)
		if err != nil {
			sendServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ByType handles POST /expenses/by-type
func (h *ExpenseHandler) ByType(c *gin.Context) { h.breakdown(service.GroupByType)(c) }

// ByVendor handles POST /expenses/by-vendor
func (h *ExpenseHandler) ByVendor(c *gin.Context) { h.breakdown(service.GroupByVendor)(c) }

// ByLocation handles POST /expenses/by-location
func (h *ExpenseHandler) ByLocation(c *gin.Context) { h.breakdown(service.GroupByLocation)(c) }

func (h *ExpenseHandler) Summary(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	resp, err := h.expenseService.Summary(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LastMonth handles POST /expenses/last-month. With ?format=xlsx the list
// is returned as a workbook download.
func (h *ExpenseHandler) LastMonth(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	list, err := h.expenseService.LastMonth(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	if c.Query("format") != "xlsx" {
		c.JSON(http.StatusOK, list)
		return
	}

	data, err := h.expenseService.ExportXLSX(list)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="transactions_%d.xlsx"`, employeeID))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// BarPlot handles POST /charts/barplot
func (h *ExpenseHandler) BarPlot(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	chart, err := h.expenseService.CategoryBarChart(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChartResponse{EmployeeID: employeeID, Chart: chart})
}

// PieChart handles POST /charts/piechart
func (h *ExpenseHandler) PieChart(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	chart, err := h.expenseService.VendorPieChart(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChartResponse{EmployeeID: employeeID, Chart: chart})
}

// Heatmap handles POST /charts/heatmap
func (h *ExpenseHandler) Heatmap(c *gin.Context) {
	employeeID, ok := bindEmployee(c)
	if !ok {
		return
	}

	chart, err := h.expenseService.CategoryLocationHeatmap(c.Request.Context(), employeeID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChartResponse{EmployeeID: employeeID, Chart: chart})
}
