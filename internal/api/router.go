package api

import (
	"net/http"
	"time"

	"recipe-master/internal/api/handlers"
	"recipe-master/internal/api/handlers/health"
	recipeHandler "recipe-master/internal/api/handlers/recipe"
	"recipe-master/internal/api/middleware"
	"recipe-master/internal/core/ai/cache"
	"recipe-master/internal/core/ai/service"
	recipeService "recipe-master/internal/core/recipe"
	"recipe-master/internal/infrastructure/config"
	"recipe-master/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	AIService     *service.Service
	RecipeService *recipeService.RecipeService
	// Cache 回應快取，未啟用時為 nil
	Cache cache.Cache
}

// SetupRouter 設置路由，回傳的 stop 用於釋放中間件的背景資源
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, func()) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	// 健康檢查路由
	var stats health.StatsReporter
	if deps.Cache != nil {
		stats = deps.Cache
	}
	healthHandler := health.NewHandler(cfg.App.Version, deps.AIService, stats)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipeHandlerInstance := recipeHandler.NewHandler(deps.RecipeService, cfg.App.Debug)
		aiHandler := handlers.NewAIHandler(deps.RecipeService, deps.AIService.Model(), cfg.App.Debug)

		recipeGroup := api.Group("/recipe")
		{
			// 預覽送給模型的指令
			recipeGroup.POST("/prompt", aiHandler.PreviewPrompt)

			// 生成食譜並匯出三種格式
			recipeGroup.POST("/generate", dedup.Middleware(), recipeHandlerInstance.HandleGenerate)

			// 匯出任意內文
			recipeGroup.POST("/export", recipeHandlerInstance.HandleExport)

			recipeGroup.GET("/:id", recipeHandlerInstance.HandleGetRecipe)
			recipeGroup.GET("/:id/export/:format", recipeHandlerInstance.HandleDownload)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.Response(false))
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, dedup.Stop
}
