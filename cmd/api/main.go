package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicboard/allotment-api/internal/config"
	assistantHandler "github.com/clinicboard/allotment-api/internal/handler/assistant"
	attendanceHandler "github.com/clinicboard/allotment-api/internal/handler/attendance"
	authHandler "github.com/clinicboard/allotment-api/internal/handler/auth"
	availabilityHandler "github.com/clinicboard/allotment-api/internal/handler/availability"
	doctorHandler "github.com/clinicboard/allotment-api/internal/handler/doctor"
	dutyHandler "github.com/clinicboard/allotment-api/internal/handler/duty"
	healthHandler "github.com/clinicboard/allotment-api/internal/handler/health"
	prometheusHandler "github.com/clinicboard/allotment-api/internal/handler/prometheus"
	scheduleHandler "github.com/clinicboard/allotment-api/internal/handler/schedule"
	timeblockHandler "github.com/clinicboard/allotment-api/internal/handler/timeblock"
	"github.com/clinicboard/allotment-api/internal/middleware"
	"github.com/clinicboard/allotment-api/internal/repository/postgres"
	"github.com/clinicboard/allotment-api/internal/router"
	"github.com/clinicboard/allotment-api/internal/service/allocation"
	attendanceService "github.com/clinicboard/allotment-api/internal/service/attendance"
	authService "github.com/clinicboard/allotment-api/internal/service/auth"
	availabilityService "github.com/clinicboard/allotment-api/internal/service/availability"
	dutyService "github.com/clinicboard/allotment-api/internal/service/duty"
	"github.com/clinicboard/allotment-api/internal/service/profile"
	scheduleService "github.com/clinicboard/allotment-api/internal/service/schedule"
	"github.com/clinicboard/allotment-api/pkg/logger"
	"github.com/clinicboard/allotment-api/pkg/messaging"
	redisBroker "github.com/clinicboard/allotment-api/pkg/messaging/redis"
	"github.com/clinicboard/allotment-api/pkg/metrics"
	"github.com/clinicboard/allotment-api/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewBroker(redisBroker.Config{URL: cfg.Redis.URL}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer broker.Close()
	}

	// Repositories
	scheduleRepo := postgres.NewScheduleRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	timeBlockRepo := postgres.NewTimeBlockRepository(db)
	dutyRepo := postgres.NewDutyRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Engine wiring
	m := metrics.NewMetrics("allotment")
	rulesStore := allocation.NewStore(cfg.Allocation.RulesPath, cfg.Allocation.RulesTTL, log)
	directory := profile.NewDirectory(profileRepo, rulesStore, cfg.Allocation.DirectoryTTL, log)
	availabilitySvc := availabilityService.NewService(scheduleRepo, attendanceRepo, timeBlockRepo, dutyRepo, directory, nil, log)
	allocatorSvc := allocation.NewService(rulesStore, availabilitySvc, scheduleRepo, m, log)

	// Collaborator services
	scheduleSvc := scheduleService.NewService(scheduleRepo, broker, m, nil, log)
	attendanceSvc := attendanceService.NewService(attendanceRepo, nil, log)
	dutySvc := dutyService.NewService(dutyRepo, nil, log)
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(userRepo, hasher, cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour, nil, log)

	r := router.New(router.Deps{
		Config:       cfg,
		Log:          log,
		Auth:         middleware.NewAuthMiddleware(authSvc),
		Metrics:      prometheusHandler.New(),
		Health:       healthHandler.NewHandler(db),
		Login:        authHandler.NewHandler(authSvc),
		Schedule:     scheduleHandler.NewHandler(scheduleSvc, allocatorSvc),
		Availability: availabilityHandler.NewHandler(availabilitySvc, m),
		Assistants:   assistantHandler.NewHandler(profileRepo, directory, broker),
		Doctors:      doctorHandler.NewHandler(profileRepo, directory, broker),
		Attendance:   attendanceHandler.NewHandler(attendanceSvc),
		TimeBlocks:   timeblockHandler.NewHandler(timeBlockRepo, nil),
		Duties:       dutyHandler.NewHandler(dutySvc),
	})

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
