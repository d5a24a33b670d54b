package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

// NewLoader creates a loader searching the given directories for the config file. When no
// directories are given, the xdg config dir and the working directory are searched.
func NewLoader(changes chan<- Config, searchPaths ...string) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("api_base_url", "http://localhost:8080/")
	loader.SetDefault("http_timeout_ms", int(DefaultHTTPTimeout.Milliseconds()))
	loader.SetDefault("listen_address", "localhost:8080")
	loader.SetDefault("database_path", Path(DefaultDBName))
	loader.SetDefault("debug", false)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)

	if len(searchPaths) == 0 {
		searchPaths = []string{Path(""), "."}
	}

	for _, searchPath := range searchPaths {
		loader.AddConfigPath(searchPath)
	}

	loader.AutomaticEnv()

	return &loader
}

// Watch starts watching the config file in use, sending any reloaded config over the changes channel.
func (cl *Loader) Watch() {
	if cl.ConfigFileUsed() == "" {
		return
	}

	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if in.Op != fsnotify.Write && in.Op != fsnotify.Rename {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	if cl.changes != nil {
		cl.changes <- config
	}
}

// Write persists config to the file currently in use, or to fullPath when no file has been loaded yet.
func (cl *Loader) Write(config Config, fullPath string) error {
	cl.Set("api_base_url", config.APIBaseURL)
	cl.Set("http_timeout_ms", config.HTTPTimeoutMs)
	cl.Set("listen_address", config.ListenAddress)
	cl.Set("database_path", config.DatabasePath)
	cl.Set("debug", config.Debug)

	var errWrite error
	if cl.ConfigFileUsed() != "" {
		errWrite = cl.WriteConfig()
	} else {
		errWrite = cl.WriteConfigAs(fullPath)
	}

	if errWrite != nil {
		return errors.Join(errWrite, errConfigWrite)
	}

	return nil
}

// Read loads the config file if one exists. A missing file is not an error, defaults and the
// environment are used instead.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if _, err := config.PlayersURL(); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config, nil
}
