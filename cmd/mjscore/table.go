package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/mjscore/internal/form"
	"github.com/dshills/mjscore/internal/render"
	"github.com/dshills/mjscore/internal/score"
)

type tableFlags struct {
	dealer bool
	win    string
	honba  int
	hans   []int
	fus    []int
	quick  bool
	out    string
}

func newTableCmd(g *globalFlags) *cobra.Command {
	f := &tableFlags{}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the payout chart for one table setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, g)
			if err != nil {
				return err
			}
			return runTable(env, f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.dealer, "dealer", false, "The winner is the dealer")
	flags.StringVar(&f.win, "win", "discard", "Win method: discard (ron) or self_draw (tsumo)")
	flags.IntVar(&f.honba, "honba", 0, "Repeat counters on the table")
	flags.IntSliceVar(&f.hans, "han", form.HanOptions, "Han rows")
	flags.IntSliceVar(&f.fus, "fu", form.FuOptions, "Fu columns")
	flags.BoolVar(&f.quick, "quick", false, "Only the quick-pick han rows (1 to 5)")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")

	return cmd
}

func runTable(env *runEnv, f *tableFlags) error {
	win, err := score.ParseWinMethod(f.win)
	if err != nil {
		return exitError(3, "invalid --win: %v", err)
	}
	setting := score.Input{Players: env.players, Role: score.NonDealer, Win: win, Honba: f.honba}
	if f.dealer {
		setting.Role = score.Dealer
	}

	hans := f.hans
	if f.quick {
		hans = form.HanQuickButtons
	}

	// Check every cell up front so the chart is all or nothing.
	for _, han := range hans {
		for _, fu := range f.fus {
			in := setting
			in.Han, in.Fu = han, fu
			if errs := form.Validate(in, env.cfg.Strict); len(errs) > 0 {
				return exitError(2, "invalid chart cell %d han %d fu: %v", han, fu, errs[0])
			}
		}
	}

	memo, err := env.memo()
	if err != nil {
		return err
	}
	defer memo.Close()

	env.log.Debug("building chart", "rows", len(hans), "columns", len(f.fus), "rules", env.rules.Name)
	chart := render.BuildChart(memo, setting, hans, f.fus)

	var output string
	switch env.cfg.Format {
	case "json":
		output, err = marshalJSON(chart)
		if err != nil {
			return err
		}
	case "md":
		output = render.ChartMarkdown(chart, env.fmt)
	default:
		output = render.NewText(textWriter(env, f.out), env.fmt).Chart(chart)
	}
	return env.write(f.out, output)
}
