package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/seido-dojo/portal-api/api/swagger"
	"github.com/seido-dojo/portal-api/internal/handler"
	"github.com/seido-dojo/portal-api/internal/middleware"
	"github.com/seido-dojo/portal-api/internal/repository"
	"github.com/seido-dojo/portal-api/internal/service"
	"github.com/seido-dojo/portal-api/pkg/cache"
	"github.com/seido-dojo/portal-api/pkg/config"
	"github.com/seido-dojo/portal-api/pkg/logger"
	corsmiddleware "github.com/seido-dojo/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/seido-dojo/portal-api/pkg/middleware/requestid"
)

// @title Dojo Member Portal API
// @version 1.0.0
// @description Membership self-service portal over the dojo's Members and Requests sheets
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	gateway, err := repository.NewSheetsGateway(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		logr.Sugar().Fatalw("failed to init sheets gateway", "error", err)
	}

	location, err := time.LoadLocation(cfg.Portal.Timezone)
	if err != nil {
		logr.Sugar().Warnw("unknown timezone, using local", "timezone", cfg.Portal.Timezone)
		location = time.Local
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The snapshot cache is an optimisation; the portal runs without it.
		logr.Sugar().Warnw("redis unavailable, snapshot caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	memberRepo := repository.NewMemberRepository(gateway, cacheRepo, metricsSvc, cfg.Sheets.MembersSheetID, cfg.Sheets.CacheTTL, logr)
	requestRepo := repository.NewRequestRepository(gateway, cacheRepo, metricsSvc, cfg.Sheets.RequestsSheetID, cfg.Sheets.CacheTTL, logr)

	validate := validator.New()

	authSvc := service.NewAuthService(memberRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
		PINSalt:     cfg.Portal.PINSalt,
	})
	balanceSvc := service.NewBalanceService(memberRepo, cfg.Portal.FreeLeaveWeeks, logr)
	requestSvc := service.NewRequestService(requestRepo, validate, logr, location)
	leaveSvc := service.NewLeaveService(requestRepo, validate, logr, location)
	contactSvc := service.NewContactService(requestRepo, validate, logr, location)
	exportSvc := service.NewExportService(requestSvc, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	balanceHandler := handler.NewBalanceHandler(balanceSvc)
	requestHandler := handler.NewRequestHandler(requestSvc, leaveSvc, contactSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Metrics)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	me := api.Group("/me", middleware.Session(authSvc))
	me.GET("/balance", balanceHandler.Balance)
	me.GET("/requests", requestHandler.List)
	me.GET("/requests/export", exportHandler.Export)
	me.POST("/requests", requestHandler.SubmitUpdate)
	me.POST("/requests/leave", requestHandler.SubmitLeave)
	me.POST("/requests/contact", requestHandler.SubmitContact)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
