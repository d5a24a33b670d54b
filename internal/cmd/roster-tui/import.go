package main

import (
	"errors"
	"log/slog"

	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/seed"
	"github.com/leighmacdonald/roster-tui/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import teams and players",
	Long:  "Import teams and players from a JSON dump into the local sqlite database",
	Args:  cobra.ExactArgs(1),
	RunE:  importRoster,
}

func importRoster(cmd *cobra.Command, args []string) error {
	userConfig, errConfig := newLoader(nil).Read()
	if errConfig != nil {
		return errors.Join(errConfig, errApp)
	}

	config.StderrLoggerInit(userConfig.LogLevel())

	database, errDB := store.Open(cmd.Context(), userConfig.DatabasePath, true)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	if err := seed.ImportFile(cmd.Context(), store.NewRepository(database), args[0]); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}
