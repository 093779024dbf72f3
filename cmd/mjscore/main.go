package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "mjscore",
		Short:         "Compute riichi mahjong payouts from han, fu, role and win method",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configFile, "config", "", "Config file (yaml, json or toml)")
	flags.StringVar(&g.envFile, "env-file", ".env", "Env file loaded before reading MJSCORE_* variables")
	flags.StringVar(&g.rules, "rules", "standard", "Rule set name or path to a rule set YAML file")
	flags.StringVar(&g.players, "players", "four", "Table size: four or three")
	flags.StringVar(&g.format, "format", "text", "Output format: text, json or md")
	flags.StringVar(&g.locale, "locale", "ja-JP", "Locale used to group digits")
	flags.BoolVar(&g.strict, "strict", false, "Only accept han, fu and honba values the form offers")
	flags.StringVar(&g.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolVar(&g.verbose, "verbose", false, "Log processing steps to stderr")
	flags.BoolVar(&g.quiet, "quiet", false, "Suppress all log output")

	root.AddCommand(
		newScoreCmd(g),
		newTableCmd(g),
		newBatchCmd(g),
		newRulesCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
