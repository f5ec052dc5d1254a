package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "facet"
	configFileType = "yaml"
	envPrefix      = "FACET"

	cfgKeyProduction = "production"
	cfgKeySilent     = "silent"
	cfgKeyFormat     = "format"
	cfgKeyLogLevel   = "log_level"

	defaultFormat = "text"
)

// Config is the file/env configuration of the CLI.
// Flags given on the command line take precedence over it.
type Config struct {
	Production bool   `mapstructure:"production"`
	Silent     bool   `mapstructure:"silent"`
	Format     string `mapstructure:"format"`
	LogLevel   string `mapstructure:"log_level"`
}

// LoadConfig reads facet.yaml and FACET_* environment variables.
//
// With an empty path the file is looked up in the working directory and a
// missing file is not an error. An explicit path must exist.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyProduction, false)
	v.SetDefault(cfgKeySilent, false)
	v.SetDefault(cfgKeyFormat, defaultFormat)
	v.SetDefault(cfgKeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// parseLogLevel maps a config string to a slog level. Unknown names fall
// back to info.
func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// newLogger builds the runtime logger for a command. Verbose forces debug.
// JSON output gets a JSON handler so stderr stays machine readable too.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := opts.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if opts.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
