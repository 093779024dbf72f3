package score

import "github.com/dshills/mjscore/internal/rules"

// maxShift keeps fu << (han+2) inside an int64.
const maxShift = 40

// Classify places han and fu on the rule set's rank ladder and returns the
// tier ordinal, its label and the base points.
//
// The ladder is checked from the top down and the first match wins. Below
// the ladder the cap conditions apply, then the standard formula
// fu * 2^(han+2); a formula result that reaches the cap is capped and
// labelled as such.
func Classify(r *rules.Rules, han, fu int) (tier int, label string, base int) {
	n := len(r.Tiers)
	for i, t := range r.Tiers {
		if han >= t.MinHan {
			return n - i + 1, t.Label, t.BasePoints
		}
	}

	for _, c := range r.Cap.Conditions {
		if c.Matches(han, fu) {
			return 1, r.Cap.Label, r.Cap.BasePoints
		}
	}

	base = standardBase(han, fu, r.Cap.BasePoints)
	if base >= r.Cap.BasePoints {
		return 1, r.Cap.Label, r.Cap.BasePoints
	}
	return 0, "", base
}

func standardBase(han, fu, limit int) int {
	shift := han + 2
	switch {
	case shift < 0:
		return 0
	case shift > maxShift && fu > 0:
		return limit
	case shift > maxShift:
		return 0
	}
	return fu * (1 << shift)
}

// RoundUp rounds x up to the next multiple of unit. It always rounds toward
// positive infinity, never to nearest.
func RoundUp(x, unit int) int {
	if unit <= 0 {
		return x
	}
	q := x / unit
	if x%unit != 0 && x > 0 {
		q++
	}
	return q * unit
}
