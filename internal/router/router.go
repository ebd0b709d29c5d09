// Package router assembles handlers and middleware into the HTTP engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pencil/internal/docs" // Register swagger docs
	"pencil/internal/handlers"
	"pencil/internal/middleware"
)

// Router holds the handlers served under /api.
type Router struct {
	ExpenseHandler *handlers.ExpenseHandler
	IncomeHandler  *handlers.IncomeHandler
	UserHandler    *handlers.UserHandler
	AllowedOrigins []string
}

// Engine builds the gin engine with middleware and every route registered.
func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogging())
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.CORS(r.AllowedOrigins))

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	r.registerRoutes(api)
	return engine
}

func (r *Router) registerRoutes(api *gin.RouterGroup) {
	if r.ExpenseHandler != nil {
		expenses := api.Group("/expenses")
		expenses.POST("/", r.ExpenseHandler.CreateExpense)
		expenses.GET("/", r.ExpenseHandler.GetExpenses)
		expenses.GET("/summary/", r.ExpenseHandler.GetExpenseSummary)
		expenses.GET("/monthly/", r.ExpenseHandler.GetExpenseMonthly)
		expenses.GET("/:id/", r.ExpenseHandler.GetExpense)
		expenses.PUT("/:id/", r.ExpenseHandler.ReplaceExpense)
		expenses.PATCH("/:id/", r.ExpenseHandler.UpdateExpense)
		expenses.DELETE("/:id/", r.ExpenseHandler.DeleteExpense)
	}

	if r.IncomeHandler != nil {
		income := api.Group("/income")
		income.POST("/", r.IncomeHandler.CreateIncome)
		income.GET("/", r.IncomeHandler.GetIncomes)
		income.GET("/summary/", r.IncomeHandler.GetIncomeSummary)
		income.GET("/monthly/", r.IncomeHandler.GetIncomeMonthly)
		income.GET("/:id/", r.IncomeHandler.GetIncome)
		income.PUT("/:id/", r.IncomeHandler.ReplaceIncome)
		income.PATCH("/:id/", r.IncomeHandler.UpdateIncome)
		income.DELETE("/:id/", r.IncomeHandler.DeleteIncome)
	}

	if r.UserHandler != nil {
		users := api.Group("/users")
		users.GET("/overview/", r.UserHandler.GetOverview)
		users.POST("/ai-insights/", r.UserHandler.GenerateInsights)
	}
}
