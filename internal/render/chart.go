package render

import (
	"github.com/dshills/mjscore/internal/format"
	"github.com/dshills/mjscore/internal/score"
)

// Chart is a han by fu grid of results for one table setting.
type Chart struct {
	// Setting fixes players, role, win method and honba; its Han and Fu
	// are ignored.
	Setting score.Input `json:"setting"`
	Hans    []int       `json:"hans"`
	Fus     []int       `json:"fus"`
	// Cells[i][j] is the result for Hans[i] and Fus[j].
	Cells [][]score.Result `json:"cells"`
}

// BuildChart computes every cell of the grid with calc.
func BuildChart(calc score.Calculator, setting score.Input, hans, fus []int) *Chart {
	c := &Chart{
		Setting: setting,
		Hans:    append([]int(nil), hans...),
		Fus:     append([]int(nil), fus...),
		Cells:   make([][]score.Result, len(hans)),
	}
	for i, han := range hans {
		c.Cells[i] = make([]score.Result, len(fus))
		for j, fu := range fus {
			in := setting
			in.Han, in.Fu = han, fu
			c.Cells[i][j] = calc.Compute(in)
		}
	}
	return c
}

// rowLabel returns the rank label shared by a whole row, if any.
func (c *Chart) rowLabel(i int) string {
	row := c.Cells[i]
	if len(row) == 0 || row[0].RankLabel == "" {
		return ""
	}
	for _, r := range row[1:] {
		if r.RankLabel != row[0].RankLabel {
			return ""
		}
	}
	return row[0].RankLabel
}

// Payment renders the payment part of a result in the short form used on
// score charts: "3,900", "2,000 all" or "1,000/2,000".
func Payment(res score.Result, f *format.Formatter) string {
	switch {
	case res.Discard != nil:
		return f.Int(*res.Discard)
	case res.SelfDraw == nil:
		return f.Int(res.Total)
	case res.SelfDraw.Kind == score.AllEqual:
		return f.Int(res.SelfDraw.NonDealerShare) + " all"
	default:
		return f.Int(res.SelfDraw.NonDealerShare) + "/" + f.Int(res.SelfDraw.DealerShare)
	}
}

func roleName(r score.Role) string {
	if r == score.Dealer {
		return "Dealer"
	}
	return "Non-dealer"
}

func winName(w score.WinMethod) string {
	if w == score.SelfDraw {
		return "self-draw"
	}
	return "discard"
}

func playersName(p score.PlayerCount) string {
	if p == score.Three {
		return "3 players"
	}
	return "4 players"
}
