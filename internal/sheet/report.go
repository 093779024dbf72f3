package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/mjscore/internal/form"
	"github.com/dshills/mjscore/internal/format"
	"github.com/dshills/mjscore/internal/render"
	"github.com/dshills/mjscore/internal/score"
)

// Report is the outcome of scoring a sheet.
type Report struct {
	Tool    string  `json:"tool"`
	Version string  `json:"version"`
	Input   Source  `json:"input"`
	Summary Summary `json:"summary"`
	Entries []Entry `json:"entries"`
}

// Source identifies the sheet and rule set used.
type Source struct {
	SheetFile string `json:"sheet_file"`
	SheetHash string `json:"sheet_hash"`
	Rules     string `json:"rules"`
	Strict    bool   `json:"strict"`
}

// Summary counts scored and rejected hands.
type Summary struct {
	Hands    int `json:"hands"`
	Scored   int `json:"scored"`
	Rejected int `json:"rejected"`
}

// Entry is one hand with either a result or the reasons it was rejected.
type Entry struct {
	Name   string        `json:"name"`
	Input  score.Input   `json:"input"`
	Result *score.Result `json:"result,omitempty"`
	Errors []string      `json:"errors,omitempty"`
}

// Evaluate scores every hand in s. Invalid hands are reported, not fatal.
// Hands are read like a session at one table: each starts from a reset
// form, so the table size stays put until a hand names another.
func Evaluate(calc score.Calculator, s *Sheet, rulesName string, strict bool) Report {
	rep := Report{
		Input: Source{
			SheetFile: filepath.Base(s.FilePath),
			SheetHash: s.Hash,
			Rules:     rulesName,
			Strict:    strict,
		},
	}

	st := form.NewState()
	for i, h := range s.Hands {
		name := h.Name
		if name == "" {
			name = fmt.Sprintf("hand-%03d", i+1)
		}
		e := Entry{Name: name}

		st.Reset()
		err := h.Apply(st)
		in := st.Input
		e.Input = in
		if err != nil {
			e.Errors = []string{err.Error()}
		} else {
			for _, ve := range form.Validate(in, strict) {
				e.Errors = append(e.Errors, ve.Error())
			}
		}

		if len(e.Errors) == 0 {
			res := calc.Compute(in)
			e.Result = &res
			rep.Summary.Scored++
		} else {
			rep.Summary.Rejected++
		}
		rep.Entries = append(rep.Entries, e)
	}
	rep.Summary.Hands = len(s.Hands)
	return rep
}

// Markdown renders a report as a Markdown table.
func Markdown(rep *Report, f *format.Formatter) string {
	var b strings.Builder

	b.WriteString("# Score Sheet\n\n")
	fmt.Fprintf(&b, "**Sheet:** %s (%s)\n", rep.Input.SheetFile, rep.Input.Rules)
	fmt.Fprintf(&b, "**Hands:** %d scored, %d rejected\n\n", rep.Summary.Scored, rep.Summary.Rejected)

	if len(rep.Entries) == 0 {
		b.WriteString("No hands found.\n")
		return b.String()
	}

	b.WriteString("| Hand | Han | Fu | Rank | Payment | Total |\n")
	b.WriteString("|---|---:|---:|---|---:|---:|\n")
	for _, e := range rep.Entries {
		if e.Result == nil {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %s | %s | %s |\n",
			e.Name, e.Input.Han, e.Input.Fu, e.Result.RankLabel,
			render.Payment(*e.Result, f), f.Int(e.Result.Total))
	}

	if rep.Summary.Rejected > 0 {
		b.WriteString("\n## Rejected\n\n")
		for _, e := range rep.Entries {
			if e.Result != nil {
				continue
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", e.Name, strings.Join(e.Errors, "; "))
		}
	}
	return b.String()
}
