package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/cache"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	timesheetService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env)
	slog.SetDefault(log)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Error("Error connecting to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	scheduleEntryRepo := postgresql.NewScheduleEntryRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	delayRoundingRepo := postgresql.NewDelayRoundingRepository(db)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		locationRepo = cache.NewLocationRepository(locationRepo, rdb, cfg.Redis.LocationTTL)
		log.Info("Location cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	tz, _ := cfg.Location()
	locale, _ := cfg.Locale()
	timesheetSvc := timesheetService.NewTimesheetService(scheduleEntryRepo, locationRepo, delayRoundingRepo, timesheetService.Options{
		DefaultRounding: cfg.DefaultDelayRounding(),
		Location:        tz,
		Locale:          locale,
	})

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)

	router := appHTTP.NewRouter(JWTService, timesheetHandler, appHTTP.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		cron.NewDelayRepairJobs(timesheetSvc, cfg.Cron.DelayRepairInterval).RegisterJobs(scheduler)
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("Server running", slog.Int("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", slog.String("error", err.Error()))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info("Shutting down server")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	log.Info("Server stopped")
}
