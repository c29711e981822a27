package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bridges/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bridge API over HTTP",
	Long: `Serves queries, inspector assignment and maintenance updates over HTTP.
With --db, bridges are loaded from the database and inspections posted to
the API are also written there.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bridges, err := loadBridges(ctx)
		if err != nil {
			return err
		}

		var recorder server.Recorder
		if fromDB {
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			recorder = store
		}

		srv := server.New(bridges, recorder, logger)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(cfg.Server.Addr) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Info("Received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
			return err
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
