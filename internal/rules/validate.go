package rules

import "fmt"

// ValidationError describes a single rule set violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a rule set for structural validity.
func Validate(r *Rules) []ValidationError {
	var errs []ValidationError

	for i, t := range r.Tiers {
		prefix := fmt.Sprintf("tiers[%d]", i)
		if t.MinHan < 1 {
			errs = append(errs, ValidationError{prefix + ".min_han", "must be >= 1"})
		}
		if t.Label == "" {
			errs = append(errs, ValidationError{prefix + ".label", "required"})
		}
		if t.BasePoints <= 0 {
			errs = append(errs, ValidationError{prefix + ".base_points", "must be > 0"})
		}
		if i > 0 {
			prev := r.Tiers[i-1]
			if t.MinHan >= prev.MinHan {
				errs = append(errs, ValidationError{prefix + ".min_han",
					fmt.Sprintf("must be below the previous tier (%d)", prev.MinHan)})
			}
			if t.BasePoints >= prev.BasePoints {
				errs = append(errs, ValidationError{prefix + ".base_points",
					fmt.Sprintf("must be below the previous tier (%d)", prev.BasePoints)})
			}
		}
	}

	if r.Cap.Label == "" {
		errs = append(errs, ValidationError{"cap.label", "required"})
	}
	if r.Cap.BasePoints <= 0 {
		errs = append(errs, ValidationError{"cap.base_points", "must be > 0"})
	}
	if n := len(r.Tiers); n > 0 && r.Cap.BasePoints >= r.Tiers[n-1].BasePoints {
		errs = append(errs, ValidationError{"cap.base_points",
			fmt.Sprintf("must be below the lowest tier (%d)", r.Tiers[n-1].BasePoints)})
	}
	if len(r.Cap.Conditions) == 0 {
		errs = append(errs, ValidationError{"cap.conditions", "at least one condition required"})
	}
	for i, c := range r.Cap.Conditions {
		prefix := fmt.Sprintf("cap.conditions[%d]", i)
		switch {
		case c.Han > 0 && c.MinHan > 0:
			errs = append(errs, ValidationError{prefix, "han and min_han are mutually exclusive"})
		case c.Han <= 0 && c.MinHan <= 0:
			errs = append(errs, ValidationError{prefix, "one of han or min_han must be > 0"})
		}
		if c.MinFu < 0 {
			errs = append(errs, ValidationError{prefix + ".min_fu", "must be >= 0"})
		}
	}

	errs = append(errs, validateMultiplier("discard.dealer", r.Discard.Dealer)...)
	errs = append(errs, validateMultiplier("discard.non_dealer", r.Discard.NonDealer)...)
	errs = append(errs, validateTable("self_draw.four", r.SelfDraw.Four)...)
	errs = append(errs, validateTable("self_draw.three", r.SelfDraw.Three)...)

	if r.Honba.Discard < 0 {
		errs = append(errs, ValidationError{"honba.discard", "must be >= 0"})
	}
	if r.Honba.SelfDraw < 0 {
		errs = append(errs, ValidationError{"honba.self_draw", "must be >= 0"})
	}
	if r.RoundUnit <= 0 {
		errs = append(errs, ValidationError{"round_unit", "must be > 0"})
	}

	return errs
}

func validateTable(prefix string, t SelfDrawTable) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateMultiplier(prefix+".dealer_win", t.DealerWin)...)
	errs = append(errs, validateMultiplier(prefix+".dealer", t.Dealer)...)
	errs = append(errs, validateMultiplier(prefix+".non_dealer", t.NonDealer)...)
	if !t.TotalPolicy.Valid() {
		errs = append(errs, ValidationError{prefix + ".total_policy", fmt.Sprintf("invalid: %q", t.TotalPolicy)})
	}
	return errs
}

func validateMultiplier(path string, m float64) []ValidationError {
	if m <= 0 {
		return []ValidationError{{path, "must be > 0"}}
	}
	if !inTenths(m) {
		return []ValidationError{{path, fmt.Sprintf("%v is not a multiple of 0.1", m)}}
	}
	return nil
}
