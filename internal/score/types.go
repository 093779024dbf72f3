// Package score computes payouts for a winning hand from its han, fu,
// role, win method and repeat counters.
package score

import "fmt"

// Input is everything a payout depends on.
type Input struct {
	Players PlayerCount `json:"players" yaml:"players"`
	Role    Role        `json:"role" yaml:"role"`
	Win     WinMethod   `json:"win" yaml:"win"`
	Han     int         `json:"han" yaml:"han"`
	Fu      int         `json:"fu" yaml:"fu"`
	Honba   int         `json:"honba" yaml:"honba"`
}

// Key renders a stable identifier for the input.
func (in Input) Key() string {
	return fmt.Sprintf("%s/%s/%s/%d/%d/%d", in.Players, in.Role, in.Win, in.Han, in.Fu, in.Honba)
}

// Result is the computed payout for one Input.
type Result struct {
	BasePoints int    `json:"base_points"`
	RankLabel  string `json:"rank_label"`
	// Tier orders the named ranks: 0 is unranked, 1 the capped tier,
	// and higher values climb the ladder.
	Tier  int `json:"tier"`
	Total int `json:"total"`
	// Exactly one of Discard and SelfDraw is set, chosen by the win method.
	Discard  *int             `json:"discard_payment,omitempty"`
	SelfDraw *SelfDrawPayment `json:"self_draw_payment,omitempty"`
}

// SelfDrawPayment breaks a self-draw win down per paying party.
type SelfDrawPayment struct {
	Kind           ShareKind `json:"kind"`
	NonDealerShare int       `json:"non_dealer_share"`
	// DealerShare is only set for DealerAndOthers.
	DealerShare int `json:"dealer_share,omitempty"`
}
