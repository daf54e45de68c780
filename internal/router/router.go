package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/config"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/handlers"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/middleware"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/payroll"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/repositories"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/services"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/workerpool"
)

// Setup wires repositories, services and handlers onto the gin engine.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, pool *workerpool.Pool, notifier services.Notifier) {
	authRepo := repositories.NewAuthRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)

	payCfg := payroll.Config{
		HourlyRate:          cfg.PayRatePerHour,
		DefaultCarAllowance: cfg.DefaultCarAllowance,
	}

	authService := services.NewAuthService(authRepo, db)
	shiftService := services.NewShiftService(shiftRepo, authRepo, db, cfg.DefaultCarAllowance, notifier, pool)
	payrollService := services.NewPayrollService(shiftRepo, authRepo, payCfg)

	authHandler := handlers.NewAuthHandler(authService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	payrollHandler := handlers.NewPayrollHandler(payrollService, payCfg)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupShiftRoutes(authenticated, shiftHandler)
		SetupPayrollRoutes(authenticated, payrollHandler)
	}
}
