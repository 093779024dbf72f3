// Package render produces text and Markdown output from score results.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/mjscore/internal/format"
	"github.com/dshills/mjscore/internal/score"
)

// Markdown renders a single result as a Markdown report.
func Markdown(in score.Input, res score.Result, f *format.Formatter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %d han %d fu", in.Han, in.Fu)
	if res.RankLabel != "" {
		fmt.Fprintf(&b, " (%s)", res.RankLabel)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Setting:** %s, %s, %s", playersName(in.Players), roleName(in.Role), winName(in.Win))
	if in.Honba > 0 {
		fmt.Fprintf(&b, ", %d honba", in.Honba)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "**Total:** %s pts\n", f.Int(res.Total))
	fmt.Fprintf(&b, "**Base points:** %s pts\n\n", f.Int(res.BasePoints))

	writePayments(&b, res, f)
	return b.String()
}

func writePayments(b *strings.Builder, res score.Result, f *format.Formatter) {
	switch {
	case res.Discard != nil:
		b.WriteString("| Payer | Pays |\n|---|---:|\n")
		fmt.Fprintf(b, "| Discarder | %s |\n", f.Int(*res.Discard))
	case res.SelfDraw != nil && res.SelfDraw.Kind == score.AllEqual:
		b.WriteString("| Payer | Pays |\n|---|---:|\n")
		fmt.Fprintf(b, "| Each other player | %s |\n", f.Int(res.SelfDraw.NonDealerShare))
	case res.SelfDraw != nil:
		b.WriteString("| Payer | Pays |\n|---|---:|\n")
		fmt.Fprintf(b, "| Dealer | %s |\n", f.Int(res.SelfDraw.DealerShare))
		fmt.Fprintf(b, "| Each non-dealer | %s |\n", f.Int(res.SelfDraw.NonDealerShare))
	}
}

// ChartMarkdown renders a chart as a Markdown table.
func ChartMarkdown(c *Chart, f *format.Formatter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s, %s", roleName(c.Setting.Role), winName(c.Setting.Win), playersName(c.Setting.Players))
	if c.Setting.Honba > 0 {
		fmt.Fprintf(&b, ", %d honba", c.Setting.Honba)
	}
	b.WriteString("\n\n")

	b.WriteString("| Han |")
	for _, fu := range c.Fus {
		fmt.Fprintf(&b, " %d fu |", fu)
	}
	b.WriteString("\n|---|")
	for range c.Fus {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for i, han := range c.Hans {
		if label := c.rowLabel(i); label != "" {
			fmt.Fprintf(&b, "| %d (%s) |", han, label)
		} else {
			fmt.Fprintf(&b, "| %d |", han)
		}
		for _, res := range c.Cells[i] {
			fmt.Fprintf(&b, " %s |", Payment(res, f))
		}
		b.WriteString("\n")
	}
	return b.String()
}
