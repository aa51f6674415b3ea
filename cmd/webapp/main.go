package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"playdamnit/internal/assistant"
	"playdamnit/internal/auth"
	"playdamnit/internal/backend"
	"playdamnit/internal/cache"
	"playdamnit/internal/catalog"
	"playdamnit/internal/exporter"
	"playdamnit/internal/importer"
	"playdamnit/internal/library"
	"playdamnit/internal/profile"
	"playdamnit/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.NewLogger(cfg.LogLevel)
	if err := cfg.ValidateForServer(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	apiClient := backend.NewClient(cfg.APIBaseURL, logger)
	authClient := auth.NewServiceClient(cfg.AuthBaseURL, logger)
	aiClient := assistant.NewAIClient(cfg.AIBaseURL, logger)

	tokenSvc := auth.TokenService{
		Secret:   []byte(cfg.SessionSecret),
		Issuer:   "playdamnit",
		Duration: 7 * 24 * time.Hour,
	}

	store := cache.NewStore()
	hub := cache.NewHub(store)
	libSvc := library.NewService(apiClient, hub, logger)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ws_clients": hub.Count()})
	})

	// library invalidation push
	router.GET("/ws", cache.WSHandler(hub, logger))

	auth.NewHandler(authClient, tokenSvc, logger).RegisterRoutes(router.Group("/auth"))

	api := router.Group("/api")
	profile.NewHandler(apiClient, libSvc, logger).RegisterRoutes(api)
	library.NewHandler(libSvc, tokenSvc).RegisterRoutes(api)
	catalog.NewHandler(apiClient, logger).RegisterRoutes(api.Group("/games"))

	protected := api.Group("", auth.Middleware(tokenSvc))
	importer.NewHandler(importer.NewRunner(apiClient, hub, logger)).RegisterRoutes(protected)
	exporter.NewHandler(exporter.New(apiClient, logger)).RegisterRoutes(protected)

	assistantSvc := assistant.NewService(aiClient, apiClient, libSvc, logger)
	protected.GET("/assistant/ws", assistant.WSHandler(assistantSvc))

	httpSrv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.ServerPort).Info("gateway listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.WithField("signal", sig.String()).Info("shutdown signal received")
	case err := <-errCh:
		logger.WithError(err).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("http shutdown error")
	}
	logger.Info("gateway stopped")
}
