package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/config"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/database"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/notifier"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/repositories"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/router"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/services"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/utils"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/workerpool"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitJWT(cfg.JWTSecret, cfg.JWTExpiration)

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database initialized")

	// Pool for best-effort background jobs (manager notifications).
	pool := workerpool.New(4, 32)
	defer pool.Close()

	var shiftNotifier services.Notifier
	if cfg.SMTP.Enabled() {
		shiftNotifier = notifier.NewSMTPNotifier(cfg.SMTP)
		utils.LogInfo("SMTP notifications enabled", map[string]interface{}{"manager_email": cfg.SMTP.ManagerEmail})
	} else {
		shiftNotifier = notifier.NewLogNotifier()
		utils.LogInfo("SMTP not configured, shift notifications will only be logged")
	}

	authService := services.NewAuthService(repositories.NewAuthRepository(db), db)
	if err := authService.EnsureDefaultManager(cfg.DefaultManagerUsername, cfg.DefaultManagerPassword); err != nil {
		log.Fatalf("Failed to seed manager account: %v", err)
	}

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, db, cfg, pool, shiftNotifier)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
