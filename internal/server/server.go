package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hameema-git/ramzan-challange/internal/handler"
	"github.com/hameema-git/ramzan-challange/internal/middleware"
	"github.com/hameema-git/ramzan-challange/internal/repository"
	"github.com/hameema-git/ramzan-challange/internal/service"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
	"github.com/hameema-git/ramzan-challange/pkg/monitoring"
	"github.com/hameema-git/ramzan-challange/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	// Image storage is optional; without it badges render but the
	// share link is unavailable.
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Log.Warn("cloudinary storage not configured, badge sharing disabled", logger.Err(err))
		imageStorage = nil
	}

	var meiliClient meilisearch.ServiceManager
	if meiliHost := os.Getenv("MEILISEARCH_HOST"); meiliHost != "" {
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient = meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	} else {
		logger.Log.Warn("MEILISEARCH_HOST is not set, group search disabled")
	}

	searchSvc := service.NewSearchService(meiliClient)

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	recordSvc := service.NewRecordService(recordRepo, userRepo, redisClient)
	recordHandler := handler.NewRecordHandler(recordSvc)

	leaderboardSvc := service.NewLeaderboardService(userRepo, recordRepo, redisClient)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc, redisClient)

	groupSvc := service.NewGroupService(groupRepo, userRepo, recordRepo, searchSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)

	badgeSvc, err := service.NewBadgeService(leaderboardSvc, groupSvc, imageStorage)
	if err != nil {
		logger.Log.Fatal("failed to initialize badge renderer", logger.Err(err))
	}
	badgeHandler := handler.NewBadgeHandler(badgeSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(monitoring.MetricsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", monitoring.PrometheusHandler())

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
		protected.GET("/profile/me", authHandler.Me)
		protected.DELETE("/account", authHandler.DeleteAccount)

		// Record routes
		protected.PUT("/records/:date", recordHandler.Save)
		protected.GET("/records/:date", recordHandler.Get)
		protected.GET("/records", recordHandler.List)

		// Leaderboard routes
		protected.GET("/leaderboard", leaderboardHandler.Global)
		protected.GET("/leaderboard/me", leaderboardHandler.MyRank)
		protected.GET("/leaderboard/ws", leaderboardHandler.HandleWebSocket)

		// Group routes
		protected.POST("/groups", groupHandler.Create)
		protected.GET("/groups", groupHandler.ListMine)
		protected.GET("/groups/search", groupHandler.Search)
		protected.POST("/groups/join", groupHandler.Join)
		protected.GET("/groups/:id", groupHandler.Detail)
		protected.DELETE("/groups/:id", groupHandler.Delete)
		protected.GET("/groups/:id/badge", badgeHandler.Group)

		// Badge routes
		protected.GET("/badge", badgeHandler.Global)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
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
