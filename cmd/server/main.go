package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Bange254/Bttshoes/internal/domain/common"
	_ "github.com/Bange254/Bttshoes/internal/domain/coupon"
	_ "github.com/Bange254/Bttshoes/internal/domain/notification"
	_ "github.com/Bange254/Bttshoes/internal/domain/order"
	_ "github.com/Bange254/Bttshoes/internal/domain/payment"
	_ "github.com/Bange254/Bttshoes/internal/domain/product"
	_ "github.com/Bange254/Bttshoes/internal/domain/user"

	"github.com/Bange254/Bttshoes/internal/pkg/config"
	"github.com/Bange254/Bttshoes/internal/pkg/middleware"
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
	"github.com/Bange254/Bttshoes/pkg/database"
	"github.com/Bange254/Bttshoes/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.App.Debug)
	defer logger.Sync()

	db, err := database.InitDatabase(cfg.Database, cfg.App.Debug)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}

	rdb, err := database.InitRedis(cfg.Redis)
	if err != nil {
		logger.Log.Fatal("failed to connect to redis", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(rate.Limit(50), 100)))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	ctx := &registry.ModuleContext{
		Cfg:    cfg,
		DB:     db,
		Redis:  rdb,
		Router: router,
	}
	if err := registry.InitModules(ctx); err != nil {
		logger.Log.Fatal("module initialisation failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server exited", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
}
