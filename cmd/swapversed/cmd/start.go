package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/swapverse/swapverse/api"
	"github.com/swapverse/swapverse/app"
	"github.com/swapverse/swapverse/app/health"
)

const dbName = "swapverse"

// StartCmd runs the engine with its API, metrics and sweeper
func StartCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the engine and serve the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			cfg, err := readConfig(v)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runNode(ctx, cfg, home, logger)
		},
	}
}

func runNode(ctx context.Context, cfg Config, home string, logger log.Logger) error {
	tel, err := app.InitTelemetry(cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	swapApp, err := openApp(cfg, home, logger, app.WithTelemetry(tel))
	if err != nil {
		return err
	}
	defer func() {
		if err := swapApp.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}()

	if swapApp.Fresh() {
		if err := loadGenesis(ctx, swapApp, genesisPath(home)); err != nil {
			return err
		}
		logger.Info("loaded genesis", "path", genesisPath(home))
	}

	server, err := api.NewServer(swapApp, &cfg.API, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		hcfg := health.DefaultConfig()
		hcfg.MaxSweepAge = cfg.Metrics.MaxSweepAge
		hcfg.Version = Version
		checker, err := health.NewChecker(logger, hcfg, swapApp)
		if err != nil {
			return err
		}
		metrics := newMetricsServer(cfg.Metrics.Address, checker, logger)
		metrics.start()
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
			defer cancel()
			return metrics.shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		runSweeper(gctx, swapApp, cfg.SweepInterval, logger)
		return nil
	})
	g.Go(func() error {
		return server.Start(gctx)
	})

	return g.Wait()
}

// runSweeper calls EndBlock every interval until ctx is done
func runSweeper(ctx context.Context, swapApp *app.App, interval time.Duration, logger log.Logger) {
	if interval <= 0 {
		logger.Info("sweeper disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := swapApp.EndBlock(ctx); err != nil {
				logger.Error("lifecycle sweep failed", "error", err)
			}
		}
	}
}

// openApp opens the configured database under home/data
func openApp(cfg Config, home string, logger log.Logger, opts ...app.Option) (*app.App, error) {
	db, err := dbm.NewDB(dbName, dbm.BackendType(cfg.DBBackend), filepath.Join(home, "data"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	swapApp, err := app.New(logger, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return swapApp, nil
}

func loadGenesis(ctx context.Context, swapApp *app.App, path string) error {
	bz, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read genesis: %w", err)
	}
	var gs app.GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return fmt.Errorf("decode genesis %s: %w", path, err)
	}
	return swapApp.InitGenesis(ctx, gs)
}
