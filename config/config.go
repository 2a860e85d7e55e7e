// Package config loads librarycli settings from defaults, an optional YAML
// file, LIBRARY_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Seed     string    `mapstructure:"seed"`      // YAML seed file; empty uses the sample catalog
	NoSample bool      `mapstructure:"no_sample"` // start with an empty catalog
	Output   string    `mapstructure:"output"`    // text | json
	Log      LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // text | json
}

// flag name -> config key
var flagKeys = map[string]string{
	"seed":       "seed",
	"no-sample":  "no_sample",
	"output":     "output",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("seed", "", "YAML file with the initial books and members")
	fs.Bool("no-sample", false, "start with an empty catalog instead of the sample data")
	fs.StringP("output", "o", "text", "result format: text or json")
	fs.String("log-level", "warn", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
}

// Load resolves the configuration. fs may be nil, in which case only
// defaults and the environment are consulted.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("seed", "")
	v.SetDefault("no_sample", false)
	v.SetDefault("output", "text")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format: %q", cfg.Output)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", cfg.Log.Format)
	}
	if cfg.NoSample && cfg.Seed != "" {
		return fmt.Errorf("seed and no-sample are mutually exclusive")
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level: %q", s)
	}
	return lvl, nil
}

// NewLogger builds a slog.Logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := parseLevel(l.Level)
	if err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
