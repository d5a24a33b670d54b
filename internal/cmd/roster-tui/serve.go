package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leighmacdonald/roster-tui/internal/api"
	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:               "serve",
	Short:             "Serve the players api",
	Long:              "Serve GET /api/players from the local sqlite database for development",
	Args:              cobra.NoArgs,
	ValidArgsFunction: cobra.NoFileCompletions,
	RunE:              serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	userConfig, errConfig := newLoader(nil).Read()
	if errConfig != nil {
		return errors.Join(errConfig, errApp)
	}

	config.StderrLoggerInit(userConfig.LogLevel())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, errDB := store.Open(ctx, userConfig.DatabasePath, true)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	server := api.New(store.NewRepository(database), slog.Default())

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Start(userConfig.ListenAddress)
	})
	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}
