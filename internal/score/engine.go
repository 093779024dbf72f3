package score

import "github.com/dshills/mjscore/internal/rules"

// Calculator computes a Result for an Input.
type Calculator interface {
	Compute(in Input) Result
}

// CalculatorFunc adapts a function to a Calculator.
type CalculatorFunc func(Input) Result

func (f CalculatorFunc) Compute(in Input) Result { return f(in) }

// Engine computes payouts under one rule set. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	rules rules.Rules

	// multipliers in tenths
	discardDealer    int
	discardNonDealer int
	four, three      selfDrawTable
}

type selfDrawTable struct {
	dealerWin int
	dealer    int
	nonDealer int
	policy    rules.TotalPolicy
}

func newTable(t rules.SelfDrawTable) selfDrawTable {
	return selfDrawTable{
		dealerWin: rules.Tenths(t.DealerWin),
		dealer:    rules.Tenths(t.Dealer),
		nonDealer: rules.Tenths(t.NonDealer),
		policy:    t.TotalPolicy,
	}
}

// New returns an Engine for r. The rule set is copied.
func New(r rules.Rules) *Engine {
	r = r.Clone()
	return &Engine{
		rules:            r,
		discardDealer:    rules.Tenths(r.Discard.Dealer),
		discardNonDealer: rules.Tenths(r.Discard.NonDealer),
		four:             newTable(r.SelfDraw.Four),
		three:            newTable(r.SelfDraw.Three),
	}
}

// Rules returns a copy of the engine's rule set.
func (e *Engine) Rules() rules.Rules {
	return e.rules.Clone()
}

var standardEngine = New(rules.Standard())

// Compute scores in under the standard rule set.
func Compute(in Input) Result {
	return standardEngine.Compute(in)
}

// Compute scores in. It is a pure function of in and the engine's rules.
func (e *Engine) Compute(in Input) Result {
	tier, label, base := Classify(&e.rules, in.Han, in.Fu)
	res := Result{BasePoints: base, RankLabel: label, Tier: tier}

	if in.Win == Discard {
		m := e.discardNonDealer
		if in.Role == Dealer {
			m = e.discardDealer
		}
		pay := e.pay(base, m) + in.Honba*e.rules.Honba.Discard
		res.Discard = &pay
		res.Total = pay
		return res
	}

	t := e.four
	if in.Players == Three {
		t = e.three
	}
	payers := in.Players.Players() - 1
	bonus := in.Honba * e.rules.Honba.SelfDraw

	if in.Role == Dealer {
		share := e.pay(base, t.dealerWin) + bonus
		res.SelfDraw = &SelfDrawPayment{Kind: AllEqual, NonDealerShare: share}
		if t.policy == rules.PolicyClosedForm {
			res.Total = e.pay(base, t.dealerWin*payers) + bonus*payers
		} else {
			res.Total = share * payers
		}
		return res
	}

	dealerShare := e.pay(base, t.dealer) + bonus
	otherShare := e.pay(base, t.nonDealer) + bonus
	res.SelfDraw = &SelfDrawPayment{
		Kind:           DealerAndOthers,
		NonDealerShare: otherShare,
		DealerShare:    dealerShare,
	}
	if t.policy == rules.PolicyClosedForm {
		res.Total = e.pay(base, t.dealer+t.nonDealer*(payers-1)) + bonus*payers
	} else {
		res.Total = dealerShare + otherShare*(payers-1)
	}
	return res
}

// pay rounds base times a multiplier given in tenths up to the round unit.
func (e *Engine) pay(base, tenths int) int {
	return RoundUp(base*tenths, e.rules.RoundUnit*10) / 10
}
