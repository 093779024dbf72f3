package score

import (
	"fmt"
	"strings"
)

// PlayerCount is the table size.
type PlayerCount string

const (
	Four  PlayerCount = "four"
	Three PlayerCount = "three"
)

func (p PlayerCount) Valid() bool {
	switch p {
	case Four, Three:
		return true
	}
	return false
}

// Players returns the number of seats at the table.
func (p PlayerCount) Players() int {
	if p == Three {
		return 3
	}
	return 4
}

// ParsePlayerCount accepts "four"/"three" and "4"/"3".
func ParsePlayerCount(s string) (PlayerCount, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "four", "4":
		return Four, nil
	case "three", "3":
		return Three, nil
	}
	return "", fmt.Errorf("unknown player count %q", s)
}

// Role is the winner's seat role for the round.
type Role string

const (
	Dealer    Role = "dealer"
	NonDealer Role = "non_dealer"
)

func (r Role) Valid() bool {
	switch r {
	case Dealer, NonDealer:
		return true
	}
	return false
}

// ParseRole accepts "dealer"/"non_dealer" and the traditional "oya"/"ko".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dealer", "oya":
		return Dealer, nil
	case "non_dealer", "non-dealer", "nondealer", "ko":
		return NonDealer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// WinMethod is how the winning tile was obtained.
type WinMethod string

const (
	SelfDraw WinMethod = "self_draw"
	Discard  WinMethod = "discard"
)

func (w WinMethod) Valid() bool {
	switch w {
	case SelfDraw, Discard:
		return true
	}
	return false
}

// ParseWinMethod accepts "self_draw"/"discard" and the traditional "tsumo"/"ron".
func ParseWinMethod(s string) (WinMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "self_draw", "self-draw", "selfdraw", "tsumo":
		return SelfDraw, nil
	case "discard", "ron":
		return Discard, nil
	}
	return "", fmt.Errorf("unknown win method %q", s)
}

// ShareKind tells which self-draw payment shape applies.
type ShareKind string

const (
	// AllEqual means the dealer won and every other party pays the same share.
	AllEqual ShareKind = "all_equal"
	// DealerAndOthers means a non-dealer won; the dealer pays a larger share.
	DealerAndOthers ShareKind = "dealer_and_others"
)

func (k ShareKind) Valid() bool {
	switch k {
	case AllEqual, DealerAndOthers:
		return true
	}
	return false
}
