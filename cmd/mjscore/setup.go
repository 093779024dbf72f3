package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/mjscore/internal/config"
	"github.com/dshills/mjscore/internal/format"
	"github.com/dshills/mjscore/internal/logging"
	"github.com/dshills/mjscore/internal/rules"
	"github.com/dshills/mjscore/internal/score"
)

type globalFlags struct {
	configFile string
	envFile    string
	rules      string
	players    string
	format     string
	locale     string
	strict     bool
	logLevel   string
	verbose    bool
	quiet      bool
}

// runEnv is what every subcommand needs once flags and config are merged.
type runEnv struct {
	cfg     *config.Config
	rules   *rules.Rules
	players score.PlayerCount
	fmt     *format.Formatter
	log     *log.Logger
	stdout  io.Writer
}

// setup loads config, applies any flag the user set explicitly on top of
// it, and only then validates the merged settings.
func setup(cmd *cobra.Command, g *globalFlags) (*runEnv, error) {
	cfg, err := config.Load(config.Options{ConfigFile: g.configFile, EnvFile: g.envFile})
	if err != nil {
		return nil, exitError(3, "failed to load config: %v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("rules") {
		cfg.Rules = g.rules
	}
	if flags.Changed("players") {
		cfg.Players = g.players
	}
	if flags.Changed("format") {
		cfg.Format = g.format
	}
	if flags.Changed("locale") {
		cfg.Locale = g.locale
	}
	if flags.Changed("strict") {
		cfg.Strict = g.strict
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if g.quiet {
		logger = logging.Discard()
	}
	if g.configFile != "" {
		logger.Debug("loaded config", "file", g.configFile)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, exitError(3, "invalid settings: %v", errors.Join(errs...))
	}
	players, err := score.ParsePlayerCount(cfg.Players)
	if err != nil {
		return nil, exitError(3, "invalid players: %v", err)
	}
	r, err := rules.Resolve(cfg.Rules)
	if err != nil {
		return nil, exitError(3, "failed to load rules: %v", err)
	}
	logger.Debug("loaded rules", "name", r.Name, "version", r.Version)

	f, err := format.Parse(cfg.Locale)
	if err != nil {
		return nil, exitError(3, "invalid locale: %v", err)
	}

	return &runEnv{
		cfg:     cfg,
		rules:   r,
		players: players,
		fmt:     f,
		log:     logger,
		stdout:  cmd.OutOrStdout(),
	}, nil
}

// memo wraps the rule set's engine in a cache sized from config.
func (e *runEnv) memo() (*score.Memo, error) {
	m, err := score.NewMemo(score.New(*e.rules), e.cfg.Cache.MaxCost)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache: %w", err)
	}
	return m, nil
}

// write sends output to path, or to stdout when path is empty.
func (e *runEnv) write(path, output string) error {
	if path == "" {
		_, err := io.WriteString(e.stdout, output)
		return err
	}
	e.log.Debug("writing output", "file", path)
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}
	return string(data) + "\n", nil
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
