package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/mjscore/internal/sheet"
)

type batchFlags struct {
	out string
}

func newBatchCmd(g *globalFlags) *cobra.Command {
	f := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch <sheet-file>",
		Short: "Score every hand in a YAML or JSON sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, g)
			if err != nil {
				return err
			}
			return runBatch(env, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	return cmd
}

func runBatch(env *runEnv, sheetPath string, f *batchFlags) error {
	env.log.Debug("loading sheet", "file", sheetPath)
	s, err := sheet.Load(sheetPath)
	if err != nil {
		return exitError(3, "failed to load sheet: %v", err)
	}

	memo, err := env.memo()
	if err != nil {
		return err
	}
	defer memo.Close()

	rep := sheet.Evaluate(memo, s, env.rules.Name, env.cfg.Strict)
	rep.Tool = "mjscore"
	rep.Version = version
	for _, e := range rep.Entries {
		if len(e.Errors) > 0 {
			env.log.Warn("hand rejected", "name", e.Name, "errors", len(e.Errors))
		}
	}

	var output string
	switch env.cfg.Format {
	case "json":
		output, err = marshalJSON(rep)
		if err != nil {
			return err
		}
	default:
		// The sheet report is tabular; text and md share the Markdown form.
		output = sheet.Markdown(&rep, env.fmt)
	}
	if err := env.write(f.out, output); err != nil {
		return err
	}

	if rep.Summary.Rejected > 0 {
		return exitError(2, "%d of %d hands rejected", rep.Summary.Rejected, rep.Summary.Hands)
	}
	return nil
}
