package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/handlers"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/middleware"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
)

// SetupPublicAuthRoutes registers the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes registers the token-protected auth routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupShiftRoutes registers the shift routes. Recording and listing are
// open to any authenticated account; allowance corrections are manager only.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, shiftHandler *handlers.ShiftHandler) {
	shiftRoutes := authenticatedGroup.Group("/shifts")
	shiftRoutes.Use(middleware.RoleAuthMiddleware(models.RoleWorker, models.RoleManager))
	{
		shiftRoutes.POST("", shiftHandler.RecordShift)
		shiftRoutes.GET("", shiftHandler.GetMyShifts)
	}

	authenticatedGroup.PATCH("/shifts/:id/allowance",
		middleware.RoleAuthMiddleware(models.RoleManager), shiftHandler.UpdateAllowance)
}

// SetupPayrollRoutes registers the payroll report routes. The full report is
// manager only; workers can always read their own.
func SetupPayrollRoutes(authenticatedGroup *gin.RouterGroup, payrollHandler *handlers.PayrollHandler) {
	authenticatedGroup.GET("/payroll",
		middleware.RoleAuthMiddleware(models.RoleManager), payrollHandler.GetAllPayrolls)
	authenticatedGroup.GET("/payroll/me",
		middleware.RoleAuthMiddleware(models.RoleWorker, models.RoleManager), payrollHandler.GetMyPayroll)
}
