package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"valuator/internal/adapters/generation"
	httpadapter "valuator/internal/adapters/http"
	"valuator/internal/adapters/memory"
	pg "valuator/internal/adapters/postgres"
	"valuator/internal/config"
	"valuator/internal/logging"
	"valuator/internal/ports"
	"valuator/internal/quality"
	"valuator/internal/services/passes"
	reportsvc "valuator/internal/services/reports"
	"valuator/internal/services/review"
	"valuator/internal/validation"
	"valuator/internal/workers/passrunner"
)

func main() {
	root := &cobra.Command{
		Use:           "valuator",
		Short:         "Valuation report pass orchestrator and quality gate",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd())
	if err := root.Execute(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, cfgErr := config.Load()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrNoDatabase) {
		return cfg, nil, cfgErr
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	if cfgErr != nil {
		logger.Warn("config: " + cfgErr.Error())
	}
	return cfg, logger, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cfg.DatabaseURL == "" {
				return eris.New("migrate: DATABASE_URL is required")
			}
			db, err := pg.Connect(cmd.Context(), cfg.DatabaseURL, 2)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			logger.Info("migrate: schema up to date")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and workflow workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return serve(cmd.Context(), cfg, logger, autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "apply migrations before serving")
	return cmd
}

func serve(parent context.Context, cfg config.Config, logger *zap.Logger, autoMigrate bool) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	rules, err := validation.LoadRules(cfg.RulesPath)
	if err != nil {
		return err
	}
	if cfg.MinQualityScore > 0 {
		rules.QualityGate.MinScore = cfg.MinQualityScore
	}

	var (
		reports ports.ReportRepository
		jobs    ports.JobRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL, 0)
		if err != nil {
			return err
		}
		defer db.Close()
		if autoMigrate {
			if err := db.Migrate(ctx); err != nil {
				return err
			}
		}
		reports, jobs = db, db
	} else {
		logger.Warn("serve: no database configured, reports are kept in memory")
		reports, jobs = memory.NewReportRepository(), memory.NewJobRepository()
	}

	gate, err := quality.New(rules, logger)
	if err != nil {
		return err
	}
	gen := generation.New(cfg.GeneratorURL, cfg.GeneratorTimeout)
	orch := passes.New(reports, passes.NewExecutor(gen, cfg.PassTimeout, logger), rules, logger)
	processor := passrunner.WorkflowProcessor{Reports: reports, Passes: orch, Logger: logger}

	srv := httpadapter.New(
		reportsvc.New(reports, jobs),
		orch,
		review.New(reports, gate, logger),
		passrunner.Inline{Jobs: jobs, Processor: processor, Logger: logger},
		logger,
	)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	if cfg.WorkflowWorkers > 0 {
		passrunner.Run(ctx, jobs, processor, cfg.WorkflowWorkers, 500*time.Millisecond, logger)
		logger.Info("serve: workflow workers started", zap.Int("workers", cfg.WorkflowWorkers))
	}

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	logger.Info("serve: listening", zap.String("addr", cfg.ListenAddr), zap.String("env", cfg.Env))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("serve: shutting down", zap.String("signal", sig.String()))
		cancel()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "serve: http server")
	}
}
