package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the process-level options. Strategy tuning lives in the
// profile file that ProfilePath points at.
type Settings struct {
	LogLevel    string `mapstructure:"logLevel"`
	Transport   string `mapstructure:"transport"`
	SocketPath  string `mapstructure:"socketPath"`
	ListenAddr  string `mapstructure:"listenAddr"`
	ProfilePath string `mapstructure:"profilePath"`
	Seed        uint64 `mapstructure:"seed"`
	JournalDir  string `mapstructure:"journalDir"`
	DBPath      string `mapstructure:"dbPath"`
}

const (
	TransportUnix      = "unix"
	TransportWebSocket = "websocket"
)

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("transport", TransportUnix)
	viper.SetDefault("socketPath", "/tmp/brood.sock")
	viper.SetDefault("listenAddr", "127.0.0.1:8765")
	viper.SetDefault("profilePath", "")
	viper.SetDefault("seed", 0)
	viper.SetDefault("journalDir", "")
	viper.SetDefault("dbPath", "")
}

// Load reads brood.yaml from configDir when present, applies BROOD_*
// environment overrides on top of the defaults, and decodes the result.
func Load(configDir string) (Settings, error) {
	setDefaults()

	viper.SetConfigName("brood")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix("BROOD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
		slog.Debug("no config file, using defaults", "dir", configDir)
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	switch s.Transport {
	case TransportUnix, TransportWebSocket:
	default:
		return Settings{}, fmt.Errorf("unknown transport %q", s.Transport)
	}
	return s, nil
}

// SlogLevel maps the configured level name onto slog. Unknown names fall back to info.
func (s Settings) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
