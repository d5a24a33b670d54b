package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/players"
	"github.com/leighmacdonald/roster-tui/internal/ui"
	"github.com/leighmacdonald/roster-tui/internal/ui/pages"
	"github.com/spf13/cobra"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	rootCmd        = &cobra.Command{
		Use:   "roster-tui",
		Short: "Terminal player roster viewer",
		Long:  `roster-tui - Browse the players served by a roster api from your terminal`,
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about roster-tui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.AddCommand(versionCmd, serveCmd, importCmd, migrateCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("roster-tui - Player Roster Terminal UI\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)              //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)               //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)                 //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)          //nolint:forbidigo
}

// newLoader honours the --config flag, otherwise the default search paths are used.
func newLoader(changes chan<- config.Config) *config.Loader {
	loader := config.NewLoader(changes)
	if cfgFile != "" {
		loader.SetConfigFile(cfgFile)
	}

	return loader
}

// run is the main entry point of roster-tui.
func run(cmd *cobra.Command, _ []string) error {
	// If PROFILE is set, it will be used as the output file path for the profiler.
	if len(os.Getenv("PROFILE")) > 0 {
		f, err := os.Create(os.Getenv("PROFILE"))
		if err != nil {
			return errors.Join(err, errApp)
		}

		if errStart := pprof.StartCPUProfile(f); errStart != nil {
			return errors.Join(errStart, errApp)
		}
		defer pprof.StopCPUProfile()
	}

	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)
	configLoader := newLoader(configUpdates)
	userConfig, errConfig := configLoader.Read()
	if errConfig != nil {
		return errors.Join(errApp, errConfig)
	}

	// Leave a file behind on first run so there is something to edit.
	configPath := configLoader.Path()
	if configPath == "" {
		configPath = config.Path(config.DefaultConfigName + ".yaml")
		if errWrite := configLoader.Write(userConfig, configPath); errWrite != nil {
			return errors.Join(errWrite, errApp)
		}

		configLoader.SetConfigFile(configPath)
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logPath := config.Path(config.DefaultLogName)
	logFile, errLogger := config.LoggerInit(logPath, userConfig.LogLevel())
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting roster-tui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	playersURL, errURL := userConfig.PlayersURL()
	if errURL != nil {
		return errors.Join(errURL, errApp)
	}

	httpClient := &http.Client{Timeout: userConfig.HTTPTimeout()}
	source := players.New(httpClient, playersURL)

	app := NewApp(configLoader, configUpdates)
	app.ui = ui.New(cmd.Context(), userConfig, source,
		pages.BuildInfo{Version: BuildVersion, Date: BuildDate, Commit: BuildCommit},
		configPath, logPath)

	return app.Run(cmd.Context())
}
