package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edusys-app/edusys-api/api/swagger"
	"github.com/edusys-app/edusys-api/internal/handler"
	appMiddleware "github.com/edusys-app/edusys-api/internal/middleware"
	"github.com/edusys-app/edusys-api/internal/service"
	"github.com/edusys-app/edusys-api/internal/store"
	"github.com/edusys-app/edusys-api/pkg/cache"
	"github.com/edusys-app/edusys-api/pkg/config"
	"github.com/edusys-app/edusys-api/pkg/logger"
	corsmiddleware "github.com/edusys-app/edusys-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edusys-app/edusys-api/pkg/middleware/requestid"
	filestore "github.com/edusys-app/edusys-api/pkg/storage"
)

// @title EduSys API
// @version 1.0.0
// @description School administration backend: teachers, students, events, reports and WhatsApp reminders
// @BasePath /api/v1
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

	kv, err := newKV(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store backend", "driver", cfg.Store.Driver, "error", err)
	}
	st := store.New(kv, logr)

	files, err := filestore.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init report storage", "error", err)
	}
	signer := filestore.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)

	metrics := service.NewMetricsService()
	st.OnWriteFailure(func(key store.Key) {
		metrics.RecordStoreWriteFailure(string(key))
	})

	events := service.NewEventService(st, nil, logr, nil)
	teachers := service.NewTeacherService(st, nil, logr)
	students := service.NewStudentService(st, nil, logr)
	whatsapp := service.NewWhatsAppService(st, logr, cfg.WhatsApp.CountryCode)
	backup := service.NewBackupService(st, logr, nil)
	configSvc := service.NewConfigService(st, logr)
	dashboard := service.NewDashboardService(st, logr, nil)
	reports := service.NewReportService(st, files, signer, logr, nil, cfg.Reports)
	scheduler := service.NewNotificationService(st, nil, nil, metrics, logr, nil, cfg.Notifications.ScanInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reports.Start(ctx)
	defer reports.Stop()

	if cfg.Notifications.Enabled {
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(appMiddleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handler.Handlers{
		Teachers:  handler.NewTeacherHandler(teachers, whatsapp),
		Students:  handler.NewStudentHandler(students, whatsapp),
		Events:    handler.NewEventHandler(events, scheduler, whatsapp),
		Config:    handler.NewConfigHandler(configSvc),
		Backup:    handler.NewBackupHandler(backup),
		Reports:   handler.NewReportHandler(reports),
		Dashboard: handler.NewDashboardHandler(dashboard, whatsapp),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// newKV selects the blob backend from configuration.
func newKV(cfg *config.Config) (store.KV, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return store.NewMemoryKV(), nil
	case config.StoreDriverRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store.NewRedisKV(client, cfg.Store.KeyPrefix), nil
	case config.StoreDriverFile:
		return store.NewFileKV(cfg.Store.Dir)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
