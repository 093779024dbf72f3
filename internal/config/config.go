// Package config loads command line settings from a config file, a .env
// file and MJSCORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dshills/mjscore/internal/score"
)

// EnvPrefix is prepended to every environment override, so log.level is
// read from MJSCORE_LOG_LEVEL.
const EnvPrefix = "MJSCORE"

// Config holds the resolved settings.
type Config struct {
	Rules   string    `mapstructure:"rules"`
	Players string    `mapstructure:"players"`
	Format  string    `mapstructure:"format"`
	Locale  string    `mapstructure:"locale"`
	Strict  bool      `mapstructure:"strict"`
	Log     LogConf   `mapstructure:"log"`
	Cache   CacheConf `mapstructure:"cache"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type CacheConf struct {
	MaxCost int64 `mapstructure:"max_cost"`
}

// Formats accepted by the format setting.
var Formats = []string{"text", "json", "md"}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		Rules:   "standard",
		Players: "four",
		Format:  "text",
		Locale:  "ja-JP",
		Log:     LogConf{Level: "info"},
		Cache:   CacheConf{MaxCost: 4096},
	}
}

// Options control where Load looks.
type Options struct {
	// ConfigFile is read when set. A missing file is an error.
	ConfigFile string
	// EnvFile is loaded into the process environment when it exists.
	EnvFile string
}

// Load resolves settings. Precedence from highest: environment, config
// file, defaults. Variables already set in the environment win over the
// .env file. The result is not validated so callers can apply their own
// overrides first; call Validate afterwards.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: env file: %w", err)
		}
	}

	v := viper.New()
	d := Defaults()
	v.SetDefault("rules", d.Rules)
	v.SetDefault("players", d.Players)
	v.SetDefault("format", d.Format)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("cache.max_cost", d.Cache.MaxCost)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() []error {
	var errs []error
	if _, err := score.ParsePlayerCount(c.Players); err != nil {
		errs = append(errs, fmt.Errorf("players: %w", err))
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("format: must be one of %s, got %q", strings.Join(Formats, ", "), c.Format))
	}
	if c.Cache.MaxCost < 0 {
		errs = append(errs, errors.New("cache.max_cost: must be >= 0"))
	}
	return errs
}
