package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/handler"
	v1 "github.com/dmehra2102/prod-golang-projects/medschedule/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/repository"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/service"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/tracer"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "medschedule",
		Short:        "Doctor availability and appointment booking service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return runServer(cmd.Context(), migrate)
		},
	}
	cmd.Flags().Bool("migrate", false, "Run migrations before serving (overrides SCHEDULING_MIGRATE_ON_START)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create schemas, tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log, cfg.App)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Connect(cfg.Database)
			if err != nil {
				return err
			}
			return database.Migrate(db, log)
		},
	}
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			roleFlag, _ := cmd.Flags().GetString("role")
			subjectFlag, _ := cmd.Flags().GetString("subject")
			email, _ := cmd.Flags().GetString("email")
			hospitalFlag, _ := cmd.Flags().GetString("hospital")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.App.Environment == "production" {
				return errors.New("refusing to mint tokens in production")
			}

			subject, err := uuid.Parse(subjectFlag)
			if err != nil {
				return fmt.Errorf("invalid --subject: %w", err)
			}
			claims := &domain.Claims{Subject: subject, Email: email, Role: domain.Role(roleFlag)}
			if hospitalFlag != "" {
				h, err := uuid.Parse(hospitalFlag)
				if err != nil {
					return fmt.Errorf("invalid --hospital: %w", err)
				}
				claims.HospitalID = &h
			}
			if _, err := domain.PrincipalFromClaims(claims); err != nil {
				return err
			}

			pair, err := auth.NewJWTManager(cfg.JWT).GenerateTokenPair(claims)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pair.AccessToken)
			return nil
		},
	}
	cmd.Flags().String("role", string(domain.RolePatient), "Principal role: admin, doctor or patient")
	cmd.Flags().String("subject", "", "Principal id (UUID)")
	cmd.Flags().String("email", "", "Principal email; doctors are resolved by it")
	cmd.Flags().String("hospital", "", "Hospital id (UUID), required for admin")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func runServer(ctx context.Context, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log, cfg.App)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewCollector(cfg.App.Name, reg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.RegisterMetrics(db, m, cfg.Database.SlowQueryThreshold, log); err != nil {
		return err
	}
	if migrate || cfg.Scheduling.MigrateOnStart {
		if err := database.Migrate(db, log); err != nil {
			return err
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		return err
	}
	clock := service.NewClock(loc)

	directoryRepo := repository.NewDirectoryRepository(db)
	windowRepo := repository.NewAvailabilityRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	documents := repository.NewDocumentLookup(db)
	tx := repository.NewTransactor(db, cfg.Scheduling.RetryDelay, log)

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), m, log)
	checker := service.NewConflictChecker(windowRepo, appointmentRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Config: cfg,
		Services: v1.Services{
			Availability: service.NewAvailabilityService(tx, windowRepo, directoryRepo, auditSvc, m, log),
			Booking:      service.NewBookingService(tx, directoryRepo, appointmentRepo, checker, auditSvc, m, clock, log),
			Statistics:   service.NewStatisticsService(directoryRepo, appointmentRepo, m, clock, log),
			Query:        service.NewQueryService(directoryRepo, windowRepo, appointmentRepo, documents, clock, log),
		},
		Tokens:   auth.NewJWTManager(cfg.JWT),
		Metrics:  m,
		Gatherer: reg,
		Logger:   log,
		Ping:     sqlDB.Ping,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("timezone", loc.String()),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	auditSvc.Shutdown()
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("closing database", zap.Error(err))
	}

	log.Info("server stopped")
	return nil
}
