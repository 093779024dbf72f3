package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dshills/mjscore/internal/format"
	"github.com/dshills/mjscore/internal/score"
)

var (
	clrAccent = lipgloss.Color("#e3b341")
	clrWhite  = lipgloss.Color("#e6edf3")
	clrSubtle = lipgloss.Color("#8b949e")
	clrPay    = lipgloss.Color("#f0c862")
	clrBorder = lipgloss.Color("#30363d")
)

// Text renders results for a terminal. Colours are only emitted when the
// writer it was created for supports them.
type Text struct {
	f *format.Formatter

	header lipgloss.Style
	rank   lipgloss.Style
	total  lipgloss.Style
	subtle lipgloss.Style
	pay    lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
}

// NewText returns a Text renderer whose styling matches w.
func NewText(w io.Writer, f *format.Formatter) *Text {
	r := lipgloss.NewRenderer(w)
	return &Text{
		f:      f,
		header: r.NewStyle().Foreground(clrWhite).Bold(true),
		rank:   r.NewStyle().Foreground(clrAccent).Bold(true),
		total:  r.NewStyle().Foreground(clrWhite).Bold(true),
		subtle: r.NewStyle().Foreground(clrSubtle),
		pay:    r.NewStyle().Foreground(clrPay),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(clrBorder),
	}
}

// Result renders one result the way the score card shows it: han and fu
// with the rank, the total, base points, then who pays what.
func (t *Text) Result(in score.Input, res score.Result) string {
	var b strings.Builder

	b.WriteString(t.header.Render(fmt.Sprintf("%d han %d fu", in.Han, in.Fu)))
	if strings.TrimSpace(res.RankLabel) != "" {
		b.WriteString("  " + t.rank.Render(res.RankLabel))
	}
	b.WriteString("\n")
	b.WriteString(t.total.Render(t.f.Int(res.Total)+" pts") + "\n")
	b.WriteString(t.subtle.Render("Base points: "+t.f.Int(res.BasePoints)+" pts") + "\n")

	switch {
	case res.Discard != nil:
		b.WriteString(t.pay.Render("Discarder pays: "+t.f.Int(*res.Discard)+" pts") + "\n")
	case res.SelfDraw != nil && res.SelfDraw.Kind == score.AllEqual:
		b.WriteString(t.pay.Render(t.f.Int(res.SelfDraw.NonDealerShare)+" pts all") + "\n")
	case res.SelfDraw != nil:
		b.WriteString(t.pay.Render(fmt.Sprintf("Non-dealer: %s pts / Dealer: %s pts",
			t.f.Int(res.SelfDraw.NonDealerShare), t.f.Int(res.SelfDraw.DealerShare))) + "\n")
	}
	return b.String()
}

// Chart renders a chart as a bordered table.
func (t *Text) Chart(c *Chart) string {
	headers := []string{"Han"}
	for _, fu := range c.Fus {
		headers = append(headers, fmt.Sprintf("%d fu", fu))
	}

	rows := make([][]string, len(c.Hans))
	for i, han := range c.Hans {
		first := fmt.Sprintf("%d", han)
		if label := c.rowLabel(i); label != "" {
			first += " " + label
		}
		row := []string{first}
		for _, res := range c.Cells[i] {
			row = append(row, Payment(res, t.f))
		}
		rows[i] = row
	}

	title := fmt.Sprintf("%s %s, %s", roleName(c.Setting.Role), winName(c.Setting.Win), playersName(c.Setting.Players))
	if c.Setting.Honba > 0 {
		title += fmt.Sprintf(", %d honba", c.Setting.Honba)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return t.cell
		})

	return t.header.Render(title) + "\n" + tbl.Render() + "\n"
}
