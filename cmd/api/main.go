package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-master/internal/api"
	"recipe-master/internal/core/ai/cache"
	"recipe-master/internal/core/ai/service"
	"recipe-master/internal/core/archive"
	"recipe-master/internal/core/export"
	"recipe-master/internal/core/recipe"
	"recipe-master/internal/infrastructure/config"
	"recipe-master/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("provider", cfg.Generation.Provider),
		zap.String("api_key", config.MaskAPIKey(cfg.APIKey())),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	ctx := context.Background()

	// 回應快取，只在開啟時建立
	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache, err = cache.New(ctx, cfg.Cache, cfg.Redis)
		if err != nil {
			common.LogFatal("Failed to initialize cache", zap.Error(err))
		}
		defer responseCache.Close()
	}

	// 已生成食譜的保存空間
	sessionCache, err := cache.New(ctx, config.CacheConfig{
		Backend:         cfg.Cache.Backend,
		MaxSize:         cfg.Session.MaxSize,
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
	}, cfg.Redis)
	if err != nil {
		common.LogFatal("Failed to initialize recipe store", zap.Error(err))
	}
	defer sessionCache.Close()

	p, err := service.NewProvider(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize provider", zap.Error(err))
	}
	aiService := service.NewService(cfg, p, responseCache)
	defer aiService.Close()

	policy, err := export.ParsePolicy(cfg.Export.UnsupportedPolicy)
	if err != nil {
		common.LogFatal("Invalid export policy", zap.Error(err))
	}
	exporter := export.NewExporter(export.Options{
		PDF: export.PDFOptions{
			FontFamily: cfg.Export.FontFamily,
			FontSize:   cfg.Export.FontSize,
			LineHeight: cfg.Export.LineHeight,
			Margin:     cfg.Export.Margin,
			Policy:     policy,
		},
		FilenamePrefix: cfg.Export.FilenamePrefix,
	})

	var archiver recipe.Archiver
	if cfg.Archive.Enabled {
		s3Archiver, err := archive.NewS3Archiver(ctx, cfg.Archive)
		if err != nil {
			common.LogFatal("Failed to initialize archive", zap.Error(err))
		}
		archiver = s3Archiver
	}

	store := recipe.NewStore(sessionCache, cfg.Session.TTL)
	recipeSvc := recipe.NewRecipeService(aiService, store, exporter, archiver)

	// 設置路由
	router, stop := api.SetupRouter(cfg, api.Dependencies{
		AIService:     aiService,
		RecipeService: recipeSvc,
		Cache:         responseCache,
	})
	defer stop()

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
