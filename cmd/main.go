package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bridges/internal/bridge"
	"bridges/internal/config"
	"bridges/internal/database"
	"bridges/internal/geo"
	"bridges/internal/types"
)

var (
	// Global flags
	configPath string
	dataPath   string
	fromDB     bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorReset  = "\033[0m"
)

var rootCmd = &cobra.Command{
	Use:   "bridges",
	Short: "Query and maintain the provincial bridge inventory",
	Long: `bridges loads the bridge inventory export (CSV) or the bridge database and
answers questions about it: lookups, keyword search, distance queries,
condition filters and inspector assignment. Maintenance updates are written
to the configured database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataPath != "" {
			cfg.DataFile = dataPath
		}

		zc := zap.NewProductionConfig()
		if verbose || strings.EqualFold(cfg.Logging.Level, "debug") {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "bridges.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Bridge CSV export (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&fromDB, "db", false, "Load bridges from the configured database instead of CSV")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadBridges returns the working collection from the CSV export or, with
// --db, from the database.
func loadBridges(ctx context.Context) ([]*types.Bridge, error) {
	start := time.Now()

	var (
		bridges []*types.Bridge
		source  string
		err     error
	)
	if fromDB {
		source = cfg.Database.Driver
		var store *database.Store
		store, err = openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		bridges, err = store.LoadBridges(ctx)
	} else {
		source = cfg.DataFile
		bridges, err = bridge.LoadFile(cfg.DataFile)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("bridges loaded",
		zap.String("source", source),
		zap.Int("count", len(bridges)),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)),
	)
	return bridges, nil
}

// openStore connects to the configured database and makes sure the schema
// exists.
func openStore(ctx context.Context) (*database.Store, error) {
	store, err := database.NewStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// loadRegions returns the configured region layer, or nil when none is set
// or it cannot be read.
func loadRegions() []geo.Region {
	if cfg.Regions.Layer == "" {
		return nil
	}
	regions, err := geo.LoadRegions(cfg.Regions.Layer)
	if err != nil {
		logger.Warn("region layer unavailable", zap.Error(err))
		return nil
	}
	return regions
}
