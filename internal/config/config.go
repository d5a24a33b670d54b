package config

import (
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite   = errors.New("failed to write config file")
	errConfigRead    = errors.New("failed to read config file")
	errLoggerInit    = errors.New("failed to initialize logger")
	ErrInvalidConfig = errors.New("invalid config value")
)

const (
	ConfigDirName      = "roster-tui"
	DefaultConfigName  = "roster-tui"
	DefaultDBName      = "roster-tui.db"
	DefaultLogName     = "roster-tui.log"
	EnvPrefix          = "roster"
	DefaultHTTPTimeout = 15 * time.Second
	PlayersEndpoint    = "/api/players"
)

type Config struct {
	// APIBaseURL is the root of the api that serves the players collection.
	APIBaseURL    string `mapstructure:"api_base_url"`
	HTTPTimeoutMs int    `mapstructure:"http_timeout_ms"`
	// ListenAddress and DatabasePath are only used by the bundled development api.
	ListenAddress string `mapstructure:"listen_address"`
	DatabasePath  string `mapstructure:"database_path"`
	Debug         bool   `mapstructure:"debug"`
}

// HTTPTimeout returns the configured client timeout, falling back to DefaultHTTPTimeout.
func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutMs <= 0 {
		return DefaultHTTPTimeout
	}

	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

// PlayersURL joins the base url with the players collection endpoint.
func (c Config) PlayersURL() (string, error) {
	base, errParse := url.Parse(c.APIBaseURL)
	if errParse != nil {
		return "", errors.Join(errParse, ErrInvalidConfig)
	}

	if base.Scheme == "" || base.Host == "" {
		return "", ErrInvalidConfig
	}

	return base.JoinPath(PlayersEndpoint).String(), nil
}

func (c Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(logPath)
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}

// StderrLoggerInit is used by the non-interactive commands which are free to use the terminal.
func StderrLoggerInit(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
