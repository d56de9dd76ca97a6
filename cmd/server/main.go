package main

import (
	// Standard library
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	// External dependencies
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	// Internal packages
	"github.com/kycbridge/meeting-server/cmd/server/internal/api"
	"github.com/kycbridge/meeting-server/cmd/server/internal/audit"
	"github.com/kycbridge/meeting-server/cmd/server/internal/config"
	"github.com/kycbridge/meeting-server/cmd/server/internal/middleware"
	"github.com/kycbridge/meeting-server/cmd/server/internal/provider"
	"github.com/kycbridge/meeting-server/cmd/server/internal/services"
	"github.com/kycbridge/meeting-server/cmd/server/internal/store"
	"github.com/kycbridge/meeting-server/pkg/logger"
)

func main() {
	logInstance, err := logger.Init(logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		Environment: os.Getenv("ENV"),
		WithSource:  !strings.EqualFold(os.Getenv("ENV"), "prod"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	appLogger := logInstance.With("component", "meeting-server")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		appLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	appLogger.Info("configuration loaded", "env", cfg.Server.Env, "port", cfg.Server.Port)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect the meeting store up front so a bad connection string is a
	// startup failure, not a per-request one.
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	meetingStore, err := store.Connect(connectCtx, cfg.Store.URI, cfg.Store.Database)
	cancelConnect()
	if err != nil {
		appLogger.Error("meeting store init failed", "error", err)
		os.Exit(1)
	}
	appLogger.Info("meeting store ready", "database", cfg.Store.Database)

	roomProvider := provider.NewClient(cfg.Provider.APIURL, cfg.Provider.APIKey, cfg.Provider.Timeout)
	auditLogger := audit.NewLogger(cfg.Audit.File)

	assignmentSvc := services.NewAssignmentService(
		meetingStore, roomProvider,
		cfg.Meeting.AgentID, cfg.Provider.BaseURL,
		logInstance.With("component", "assignment"),
	)
	lifecycleSvc := services.NewLifecycleService(meetingStore, logInstance.With("component", "lifecycle"))
	adminSvc := services.NewAdminService(meetingStore, roomProvider, logInstance.With("component", "admin"))
	appLogger.Info("services ready", "agent", cfg.Meeting.AgentID)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(newCORS(cfg.Server.CORSAllowedOrigins))
	r.Use(middleware.RequestLogger())

	// Operational endpoints
	startTime := time.Now()
	r.GET("/health", healthCheckHandler(cfg, startTime))
	r.GET("/readiness", readinessCheckHandler(meetingStore))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Meeting assignment and participant lifecycle
	r.POST("/submit-details", api.HandleSubmitDetails(assignmentSvc))
	r.POST("/join-room", api.HandleJoinRoom(lifecycleSvc))
	r.POST("/leave-room", api.HandleLeaveRoom(lifecycleSvc))

	// Admin surface (unauthenticated by design)
	r.GET("/admin/meetings", api.HandleListMeetings(adminSvc, auditLogger))
	r.POST("/admin/switch-camera", api.HandleSwitchCamera(adminSvc, auditLogger))

	srv := &http.Server{
		Addr:    cfg.GetServerAddr(),
		Handler: r,
	}

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		appLogger.Info("server starting", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Wait for an interrupt or a server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	select {
	case <-quit:
		appLogger.Info("shutdown signal received, shutting down server...")
	case <-gctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server forced to shutdown", "error", err)
	}
	if err := meetingStore.Disconnect(shutdownCtx); err != nil {
		appLogger.Error("store disconnect failed", "error", err)
	}
	if err := g.Wait(); err != nil {
		appLogger.Error("server failed", "error", err)
		os.Exit(1)
	}
	appLogger.Info("server shutdown complete")
}

// newCORS builds the CORS middleware; a "*" entry allows every origin.
func newCORS(origins []string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	return cors.New(corsCfg)
}

func healthCheckHandler(cfg *config.Config, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"env":            cfg.Server.Env,
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	}
}

func readinessCheckHandler(meetingStore *store.MeetingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := meetingStore.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  "meeting store unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
