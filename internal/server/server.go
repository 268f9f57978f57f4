package server

import (
	"context"
	"log"
	"strings"
	"time"

	"kavling.dev/assetmanager/internal/config"
	"kavling.dev/assetmanager/internal/middleware"
	"kavling.dev/assetmanager/pkg/storage"

	insuranceHttp "kavling.dev/assetmanager/internal/modules/insurance/delivery/http"
	insuranceRepo "kavling.dev/assetmanager/internal/modules/insurance/repository"
	insuranceService "kavling.dev/assetmanager/internal/modules/insurance/service"

	nomineeHttp "kavling.dev/assetmanager/internal/modules/nominee/delivery/http"
	nomineeRepo "kavling.dev/assetmanager/internal/modules/nominee/repository"
	nomineeService "kavling.dev/assetmanager/internal/modules/nominee/service"

	notiHttp "kavling.dev/assetmanager/internal/modules/notification/delivery/http"
	notifRepo "kavling.dev/assetmanager/internal/modules/notification/repository"
	notifService "kavling.dev/assetmanager/internal/modules/notification/service"

	propertyHttp "kavling.dev/assetmanager/internal/modules/property/delivery/http"
	propertyRepo "kavling.dev/assetmanager/internal/modules/property/repository"
	propertyService "kavling.dev/assetmanager/internal/modules/property/service"

	reportHttp "kavling.dev/assetmanager/internal/modules/report/delivery/http"
	reportService "kavling.dev/assetmanager/internal/modules/report/service"

	userHttp "kavling.dev/assetmanager/internal/modules/user/delivery/http"
	userRepo "kavling.dev/assetmanager/internal/modules/user/repository"
	userService "kavling.dev/assetmanager/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	engine      *gin.Engine
	redisClient *redis.Client
	users       userRepo.UserRepository
}

func NewServer(cfg *config.Config, redisClient *redis.Client) *Server {
	documentStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("document storage disabled: %v", err)
		documentStorage = nil
	}

	// Repositories are in-memory; every collection lives for the process.
	properties := propertyRepo.NewPropertyRepository()
	insurances := insuranceRepo.NewInsuranceRepository()
	nominees := nomineeRepo.NewNomineeRepository()
	notifications := notifRepo.NewNotificationRepository()
	users := userRepo.NewUserRepository()

	// Notification Module
	notificationSvc := notifService.NewNotificationService(notifications, insurances, redisClient, cfg.RenewalDebounce, cfg.RenewalScanInterval)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	propertySvc := propertyService.NewPropertyService(properties, notificationSvc, documentStorage, cfg.CloudinaryUploadFolder)
	propertyHandler := propertyHttp.NewPropertyHandler(propertySvc)

	insuranceSvc := insuranceService.NewInsuranceService(insurances, properties, notificationSvc)
	insuranceHandler := insuranceHttp.NewInsuranceHandler(insuranceSvc)

	nomineeSvc := nomineeService.NewNomineeService(nominees, properties, insurances, notificationSvc)
	nomineeHandler := nomineeHttp.NewNomineeHandler(nomineeSvc)

	reportSvc := reportService.NewReportService(properties, insurances, nominees)
	reportHandler := reportHttp.NewReportHandler(reportSvc)

	authSvc := userService.NewAuthService(users, notificationSvc, redisClient, cfg.JWTSecret, cfg.TokenTTL, cfg.AuthDelay, cfg.LoginRateWait)
	authHandler := userHttp.NewAuthHandler(authSvc)

	// Renewal watcher (background): debounced scans on insurance changes plus
	// a periodic sweep.
	go notificationSvc.StartRenewalWatcher(context.Background())

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)

		// Property routes
		protected.POST("/properties", propertyHandler.CreateProperty)
		protected.GET("/properties", propertyHandler.GetAllProperties)
		protected.GET("/properties/:id", propertyHandler.GetProperty)
		protected.PUT("/properties/:id", propertyHandler.UpdateProperty)
		protected.DELETE("/properties/:id", propertyHandler.DeleteProperty)
		protected.POST("/properties/:id/documents", propertyHandler.UploadDocument)

		// Insurance routes
		protected.POST("/insurances", insuranceHandler.CreateInsurance)
		protected.GET("/insurances", insuranceHandler.GetAllInsurances)
		protected.GET("/insurances/:id", insuranceHandler.GetInsurance)
		protected.PUT("/insurances/:id", insuranceHandler.UpdateInsurance)
		protected.DELETE("/insurances/:id", insuranceHandler.DeleteInsurance)

		// Nominee routes
		protected.POST("/nominees", nomineeHandler.CreateNominee)
		protected.GET("/nominees", nomineeHandler.GetAllNominees)
		protected.GET("/nominees/:id", nomineeHandler.GetNominee)
		protected.PUT("/nominees/:id", nomineeHandler.UpdateNominee)
		protected.DELETE("/nominees/:id", nomineeHandler.DeleteNominee)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.DELETE("/notifications", notificationHandler.DismissAll)
		protected.DELETE("/notifications/:id", notificationHandler.Dismiss)
		protected.GET("/notifications/settings", notificationHandler.GetSettings)
		protected.PUT("/notifications/settings", notificationHandler.UpdateSettings)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Report routes
		protected.GET("/reports", reportHandler.GenerateReport)
	}

	return &Server{
		engine:      router,
		redisClient: redisClient,
		users:       users,
	}
}

// Users exposes the user store for development seeding.
func (s *Server) Users() userRepo.UserRepository {
	return s.users
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
