package main

import (
	"errors"
	"log/slog"

	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/store"
	"github.com/spf13/cobra"
)

var errMigrateAction = errors.New("migrate action must be one of: up, down")

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down>",
	Short:     "Migrate the database schema",
	Long:      "Fully upgrade or downgrade the schema of the local sqlite database",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      migrateDB,
}

func parseMigrateAction(name string) (store.MigrationAction, error) {
	switch name {
	case "up":
		return store.MigrateUp, nil
	case "down":
		return store.MigrateDn, nil
	default:
		return store.MigrateUp, errMigrateAction
	}
}

func migrateDB(cmd *cobra.Command, args []string) error {
	action, errAction := parseMigrateAction(args[0])
	if errAction != nil {
		return errAction
	}

	userConfig, errConfig := newLoader(nil).Read()
	if errConfig != nil {
		return errors.Join(errConfig, errApp)
	}

	config.StderrLoggerInit(userConfig.LogLevel())

	database, errDB := store.Open(cmd.Context(), userConfig.DatabasePath, false)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	if err := store.Migrate(database, action); err != nil {
		return errors.Join(err, errApp)
	}

	slog.Info("Migrated database", slog.String("action", args[0]), slog.String("path", userConfig.DatabasePath))

	return nil
}
