// Package sheet reads lists of hands to score in one run.
package sheet

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/mjscore/internal/form"
	"github.com/dshills/mjscore/internal/score"
)

// Sheet is a loaded list of hands.
type Sheet struct {
	FilePath string `json:"-" yaml:"-"`
	Hash     string `json:"-" yaml:"-"`
	Hands    []Hand `json:"hands" yaml:"hands"`
}

// Hand is one named input. Fields left out fall back to form.Defaults,
// except the table size, which carries over from the previous hand.
type Hand struct {
	Name    string    `json:"name" yaml:"name"`
	Players TableSize `json:"players,omitempty" yaml:"players,omitempty"`
	Role    string    `json:"role,omitempty" yaml:"role,omitempty"`
	Win     string    `json:"win,omitempty" yaml:"win,omitempty"`
	Han     *int      `json:"han,omitempty" yaml:"han,omitempty"`
	Fu      *int      `json:"fu,omitempty" yaml:"fu,omitempty"`
	Honba   int       `json:"honba,omitempty" yaml:"honba,omitempty"`
}

// TableSize is a player count as written in a sheet: "four", "three",
// "4", "3", or a bare number.
type TableSize string

// UnmarshalJSON accepts a string or a number.
func (t *TableSize) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TableSize(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("players: want a string or number, got %s", data)
	}
	*t = TableSize(n.String())
	return nil
}

// Load reads a YAML or JSON sheet and computes its SHA-256 hash.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet.Load: %w", err)
	}

	var s Sheet
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&s)
	}
	if err != nil {
		return nil, fmt.Errorf("sheet.Load: parse %s: %w", path, err)
	}

	h := sha256.Sum256(data)
	s.FilePath = path
	s.Hash = fmt.Sprintf("sha256:%x", h)
	return &s, nil
}

// Input converts a hand to an engine input, starting from the defaults.
// Role, win method and player count accept the same aliases as the
// command line.
func (h Hand) Input() (score.Input, error) {
	st := form.NewState()
	err := h.Apply(st)
	return st.Input, err
}

// Apply writes the fields set on h into st. On error st is unchanged.
func (h Hand) Apply(st *form.State) error {
	in := st.Input
	if h.Players != "" {
		p, err := score.ParsePlayerCount(string(h.Players))
		if err != nil {
			return err
		}
		in.Players = p
	}
	if h.Role != "" {
		r, err := score.ParseRole(h.Role)
		if err != nil {
			return err
		}
		in.Role = r
	}
	if h.Win != "" {
		w, err := score.ParseWinMethod(h.Win)
		if err != nil {
			return err
		}
		in.Win = w
	}
	if h.Han != nil {
		in.Han = *h.Han
	}
	if h.Fu != nil {
		in.Fu = *h.Fu
	}
	in.Honba = h.Honba
	st.Input = in
	return nil
}
