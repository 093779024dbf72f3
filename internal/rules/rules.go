// Package rules handles loading built-in and user-supplied scoring rule sets.
package rules

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// TotalPolicy decides how a self-draw total is derived from the payments.
type TotalPolicy string

const (
	// PolicyClosedForm rounds base points times the summed multipliers once.
	PolicyClosedForm TotalPolicy = "closed_form"
	// PolicySumOfShares adds up the individually rounded payments.
	PolicySumOfShares TotalPolicy = "sum_of_shares"
)

func (p TotalPolicy) Valid() bool {
	switch p {
	case PolicyClosedForm, PolicySumOfShares:
		return true
	}
	return false
}

// Rules is a complete scoring rule set. Treat loaded values as read-only;
// use Clone before changing one.
type Rules struct {
	Name        string   `yaml:"name"`
	Version     int      `yaml:"version"`
	Description string   `yaml:"description"`
	Tiers       []Tier   `yaml:"tiers"`
	Cap         Cap      `yaml:"cap"`
	Discard     Discard  `yaml:"discard"`
	SelfDraw    SelfDraw `yaml:"self_draw"`
	Honba       Honba    `yaml:"honba"`
	RoundUnit   int      `yaml:"round_unit"`
}

// Tier is a named rank reached at MinHan or more, with fixed base points.
// Tiers are listed from the highest threshold down.
type Tier struct {
	MinHan     int    `yaml:"min_han"`
	Label      string `yaml:"label"`
	BasePoints int    `yaml:"base_points"`
}

// Cap is the lowest named rank. Below the tier ladder a hand is capped when
// any condition matches, or when the standard formula reaches BasePoints.
type Cap struct {
	Label      string         `yaml:"label"`
	BasePoints int            `yaml:"base_points"`
	Conditions []CapCondition `yaml:"conditions"`
}

// CapCondition matches either han >= MinHan or han == Han, in both cases
// with fu >= MinFu.
type CapCondition struct {
	Han    int `yaml:"han,omitempty"`
	MinHan int `yaml:"min_han,omitempty"`
	MinFu  int `yaml:"min_fu,omitempty"`
}

// Matches reports whether the condition applies to han and fu.
func (c CapCondition) Matches(han, fu int) bool {
	if fu < c.MinFu {
		return false
	}
	if c.MinHan > 0 {
		return han >= c.MinHan
	}
	return c.Han > 0 && han == c.Han
}

// Discard holds the base point multipliers paid by the discarder.
type Discard struct {
	Dealer    float64 `yaml:"dealer"`
	NonDealer float64 `yaml:"non_dealer"`
}

// SelfDraw holds the self-draw tables per table size.
type SelfDraw struct {
	Four  SelfDrawTable `yaml:"four"`
	Three SelfDrawTable `yaml:"three"`
}

// SelfDrawTable holds self-draw multipliers for one table size.
type SelfDrawTable struct {
	// DealerWin is what every other party pays when the dealer wins.
	DealerWin float64 `yaml:"dealer_win"`
	// Dealer and NonDealer are the shares when a non-dealer wins.
	Dealer      float64     `yaml:"dealer"`
	NonDealer   float64     `yaml:"non_dealer"`
	TotalPolicy TotalPolicy `yaml:"total_policy"`
}

// Honba holds the flat bonus per repeat counter.
type Honba struct {
	Discard  int `yaml:"discard"`
	SelfDraw int `yaml:"self_draw"`
}

// Tenths converts a multiplier to an integer count of tenths.
func Tenths(m float64) int {
	return int(math.Round(m * 10))
}

func inTenths(m float64) bool {
	return math.Abs(m*10-math.Round(m*10)) < 1e-9
}

// Clone returns a deep copy of r.
func (r Rules) Clone() Rules {
	c := r
	c.Tiers = append([]Tier(nil), r.Tiers...)
	c.Cap.Conditions = append([]CapCondition(nil), r.Cap.Conditions...)
	return c
}

var standard = mustLoadBuiltin("standard")

// Standard returns the reference rule set.
func Standard() Rules {
	return standard.Clone()
}

func mustLoadBuiltin(name string) Rules {
	r, err := LoadBuiltin(name)
	if err != nil {
		panic(err)
	}
	return *r
}

// LoadBuiltin loads a built-in rule set by name.
func LoadBuiltin(name string) (*Rules, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("rules.LoadBuiltin: unknown rule set %q: %w", name, err)
	}
	r, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules.LoadBuiltin: %q: %w", name, err)
	}
	return r, nil
}

// LoadFile loads and validates a rule set from a YAML file.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules.LoadFile: %w", err)
	}
	r, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules.LoadFile: %s: %w", path, err)
	}
	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return r, nil
}

// Resolve treats arg as a file path when it names a YAML file, and as a
// built-in rule set name otherwise.
func Resolve(arg string) (*Rules, error) {
	if arg == "" {
		arg = "standard"
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
		return LoadFile(arg)
	}
	return LoadBuiltin(arg)
}

func parse(data []byte) (*Rules, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Rules
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if errs := Validate(&r); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, errors.Join(joined...)
	}
	return &r, nil
}

// List returns the names of all built-in rule sets.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Marshal renders r back to YAML.
func Marshal(r *Rules) ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("rules.Marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rules.Marshal: %w", err)
	}
	return b.Bytes(), nil
}
