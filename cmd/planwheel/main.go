package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planwheel/planwheel-server/internal/alert"
	"github.com/planwheel/planwheel-server/internal/api"
	"github.com/planwheel/planwheel-server/internal/auth"
	"github.com/planwheel/planwheel-server/internal/config"
	"github.com/planwheel/planwheel-server/internal/google"
	"github.com/planwheel/planwheel-server/internal/logger"
	"github.com/planwheel/planwheel-server/internal/repository"
	"github.com/planwheel/planwheel-server/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog := logger.New("logs/planwheel.log")
	defer zlog.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	notifier, err := alert.New(cfg.AlertTelegramToken, cfg.AlertChatID)
	if err != nil {
		log.Fatalf("alert: %v", err)
	}

	googleClient := google.NewClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	taskSvc := service.NewTaskService(db, zlog)
	blockSvc := service.NewTimeBlockService(db, zlog)
	accountSvc := service.NewAccountService(db, googleClient, zlog)
	rolloverSvc := service.NewRolloverService(db, zlog)

	scheduler := service.NewSchedulerService(loc)
	if _, err := scheduler.ScheduleDaily(cfg.RolloverTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := rolloverSvc.RolloverToStaging(jobCtx, time.Now().In(loc)); err != nil {
			zlog.Errorw("rollover failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("schedule rollover: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := api.NewRouter(api.Deps{
		Tasks:    taskSvc,
		Blocks:   blockSvc,
		Accounts: accountSvc,
		Tokens:   tokens,
		Notifier: notifier,
		Log:      zlog,
		Location: loc,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zlog.Infow("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	zlog.Info("shutdown complete")
}
