// Package form describes the values a caller may pick for a score input,
// and checks an input before it reaches the engine.
package form

import (
	"fmt"
	"slices"

	"github.com/dshills/mjscore/internal/score"
)

// Option lists offered to the user.
var (
	HanOptions      = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 26, 39}
	HanQuickButtons = []int{1, 2, 3, 4, 5}
	FuOptions       = []int{20, 25, 30, 40, 50, 60, 70, 80, 90, 100, 110}
	HonbaOptions    = func() []int {
		opts := make([]int, 21)
		for i := range opts {
			opts[i] = i
		}
		return opts
	}()
)

// Defaults returns the initial input: four players, non-dealer, discard,
// 1 han 30 fu, no repeat counters.
func Defaults() score.Input {
	return score.Input{
		Players: score.Four,
		Role:    score.NonDealer,
		Win:     score.Discard,
		Han:     1,
		Fu:      30,
		Honba:   0,
	}
}

// State holds the current selection.
type State struct {
	score.Input
}

// NewState returns a State at the defaults.
func NewState() *State {
	return &State{Input: Defaults()}
}

// Reset restores the defaults but keeps the table size.
func (s *State) Reset() {
	players := s.Players
	s.Input = Defaults()
	s.Players = players
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks in against the engine's input contract. With strict set,
// han, fu and honba must also be one of the offered options.
func Validate(in score.Input, strict bool) []ValidationError {
	var errs []ValidationError

	if !in.Players.Valid() {
		errs = append(errs, ValidationError{"players", fmt.Sprintf("invalid: %q", in.Players)})
	}
	if !in.Role.Valid() {
		errs = append(errs, ValidationError{"role", fmt.Sprintf("invalid: %q", in.Role)})
	}
	if !in.Win.Valid() {
		errs = append(errs, ValidationError{"win", fmt.Sprintf("invalid: %q", in.Win)})
	}
	if in.Han < 1 {
		errs = append(errs, ValidationError{"han", "must be >= 1"})
	} else if strict && !slices.Contains(HanOptions, in.Han) {
		errs = append(errs, ValidationError{"han", fmt.Sprintf("%d is not an offered option", in.Han)})
	}
	if in.Fu < 0 {
		errs = append(errs, ValidationError{"fu", "must be >= 0"})
	} else if strict && !slices.Contains(FuOptions, in.Fu) {
		errs = append(errs, ValidationError{"fu", fmt.Sprintf("%d is not an offered option", in.Fu)})
	}
	if in.Honba < 0 {
		errs = append(errs, ValidationError{"honba", "must be >= 0"})
	} else if strict && !slices.Contains(HonbaOptions, in.Honba) {
		errs = append(errs, ValidationError{"honba", fmt.Sprintf("%d is not an offered option", in.Honba)})
	}

	return errs
}
