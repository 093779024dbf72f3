package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/mjscore/internal/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [name-or-file]",
		Short: "List built-in rule sets, or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				text, err := listRules()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, text)
				return err
			}
			r, err := rules.Resolve(args[0])
			if err != nil {
				return exitError(3, "failed to load rules: %v", err)
			}
			data, err := rules.Marshal(r)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func listRules() (string, error) {
	names, err := rules.List()
	if err != nil {
		return "", fmt.Errorf("failed to list rules: %w", err)
	}
	var b strings.Builder
	for _, n := range names {
		r, err := rules.LoadBuiltin(n)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%-10s %s\n", n, strings.Join(strings.Fields(r.Description), " "))
	}
	return b.String(), nil
}
