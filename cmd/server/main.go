package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"wagebook-backend/internal/config"
	"wagebook-backend/internal/repository/mongodb"
	"wagebook-backend/internal/scheduler"
	"wagebook-backend/internal/server/handlers"
	"wagebook-backend/internal/server/router"
	authsvc "wagebook-backend/internal/service/auth"
	payrollsvc "wagebook-backend/internal/service/payroll"
	statssvc "wagebook-backend/internal/service/stats"
	"wagebook-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid reference timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	repo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	authService := authsvc.NewService(repo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))
	payrollService := payrollsvc.NewService(repo, baseLogger.Named("svc.payroll"))
	statsService := statssvc.NewService(repo, loc, baseLogger.Named("svc.stats"))

	engine := router.New(router.Handlers{
		Auth:       handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Employee:   handlers.NewEmployeeHandler(repo, baseLogger.Named("handlers.employee")),
		Workplace:  handlers.NewWorkplaceHandler(repo, baseLogger.Named("handlers.workplace")),
		Loan:       handlers.NewLoanHandler(repo, baseLogger.Named("handlers.loan")),
		Deduction:  handlers.NewDeductionHandler(repo, baseLogger.Named("handlers.deduction")),
		Attendance: handlers.NewAttendanceHandler(repo, payrollService, baseLogger.Named("handlers.attendance")),
		Salary:     handlers.NewSalaryHandler(payrollService, baseLogger.Named("handlers.salary")),
		Stats:      handlers.NewStatsHandler(statsService, baseLogger.Named("handlers.stats")),
	}, authService, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, repo, statsService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
