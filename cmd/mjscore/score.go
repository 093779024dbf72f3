package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/mjscore/internal/form"
	"github.com/dshills/mjscore/internal/render"
	"github.com/dshills/mjscore/internal/score"
)

type scoreFlags struct {
	han    int
	fu     int
	dealer bool
	win    string
	honba  int
	out    string
}

func newScoreCmd(g *globalFlags) *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the payout for one hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, g)
			if err != nil {
				return err
			}
			return runScore(env, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.han, "han", 1, "Han count")
	flags.IntVar(&f.fu, "fu", 30, "Fu count")
	flags.BoolVar(&f.dealer, "dealer", false, "The winner is the dealer")
	flags.StringVar(&f.win, "win", "discard", "Win method: discard (ron) or self_draw (tsumo)")
	flags.IntVar(&f.honba, "honba", 0, "Repeat counters on the table")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")

	return cmd
}

func runScore(env *runEnv, f *scoreFlags) error {
	win, err := score.ParseWinMethod(f.win)
	if err != nil {
		return exitError(3, "invalid --win: %v", err)
	}
	in := score.Input{
		Players: env.players,
		Role:    score.NonDealer,
		Win:     win,
		Han:     f.han,
		Fu:      f.fu,
		Honba:   f.honba,
	}
	if f.dealer {
		in.Role = score.Dealer
	}

	if errs := form.Validate(in, env.cfg.Strict); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return exitError(2, "invalid hand: %s", strings.Join(msgs, "; "))
	}

	env.log.Debug("computing", "input", in.Key(), "rules", env.rules.Name)
	res := score.New(*env.rules).Compute(in)

	var output string
	switch env.cfg.Format {
	case "json":
		output, err = marshalJSON(scoreOutput{Rules: env.rules.Name, Input: in, Result: res})
		if err != nil {
			return err
		}
	case "md":
		output = render.Markdown(in, res, env.fmt)
	default:
		output = render.NewText(textWriter(env, f.out), env.fmt).Result(in, res)
	}
	return env.write(f.out, output)
}

type scoreOutput struct {
	Rules  string       `json:"rules"`
	Input  score.Input  `json:"input"`
	Result score.Result `json:"result"`
}

// textWriter picks the writer lipgloss inspects for colour support. Files
// get plain text.
func textWriter(env *runEnv, out string) io.Writer {
	if out != "" {
		return io.Discard
	}
	return env.stdout
}

