package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Invoice  *InvoiceHandler
	Expense  *ExpenseHandler
	Forecast *ForecastHandler
	Employee *EmployeeHandler
	Chat     *ChatHandler
}

func NewRouter(h Handlers, corsOrigins []string, maxMultipartMemory int64) *gin.Engine {
	router := gin.Default()
	if maxMultipartMemory > 0 {
		router.MaxMultipartMemory = maxMultipartMemory
	}

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", sessionHeader},
		ExposeHeaders: []string{sessionHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Expense Insights",
		})
	})

	api := router.Group("/api/v1")
	{
		inv := api.Group("/invoice")
		{
			inv.POST("/entity-recognition", h.Invoice.EntityRecognition)
			inv.POST("/extract", h.Invoice.Extract)
			inv.POST("/summarize", h.Invoice.Summarize)
			inv.POST("/classify", h.Invoice.Classify)
			inv.POST("/query", h.Invoice.Query)
			inv.POST("/scan", h.Invoice.Scan)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", h.Invoice.Record)
			expenses.POST("/by-type", h.Expense.ByType)
			expenses.POST("/by-vendor", h.Expense.ByVendor)
			expenses.POST("/by-location", h.Expense.ByLocation)
			expenses.POST("/summary", h.Expense.Summary)
			expenses.POST("/last-month", h.Expense.LastMonth)
		}

		charts := api.Group("/charts")
		{
			charts.POST("/barplot", h.Expense.BarPlot)
			charts.POST("/piechart", h.Expense.PieChart)
			charts.POST("/heatmap", h.Expense.Heatmap)
		}

		fc := api.Group("/forecast")
		{
			fc.POST("/monthly-plot", h.Forecast.MonthlyPlot)
			fc.POST("/monthly", h.Forecast.Monthly)
			fc.POST("/yearly", h.Forecast.Yearly)
			fc.POST("/category", h.Forecast.Category)
		}

		emp := api.Group("/employee")
		{
			emp.POST("/details", h.Employee.Details)
			emp.POST("/net-worth", h.Employee.NetWorth)
			emp.POST("/ctc-chart", h.Employee.CTCChart)
			emp.POST("/manage-debt", h.Employee.ManageDebt)
		}

		api.POST("/chat", h.Chat.Chat)
	}

	return router
}
