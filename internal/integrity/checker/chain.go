package checker

import (
	"context"

	"devicegate/internal/integrity/metrics"
)

// Chain runs checkers in a fixed order with short-circuit-on-first-failure
// semantics. Later checkers are not invoked after a veto, so their side
// effects (notably the privacy-tools network call) never happen for a request
// an earlier checker already rejected.
type Chain struct {
	checkers []Checker
}

// NewChain builds the production chain: country, then device integrity, then
// privacy tools. Order is part of the contract and must not change.
func NewChain(country, rooted, privacyTools Checker) *Chain {
	return &Chain{checkers: []Checker{country, rooted, privacyTools}}
}

// Evaluate returns the first failing checker's outcome, or a passing outcome
// when all checkers agree.
func (c *Chain) Evaluate(ctx context.Context, in Input) (Outcome, error) {
	for _, chk := range c.checkers {
		outcome, err := chk.Evaluate(ctx, in)
		if err != nil {
			return Outcome{}, err
		}
		if outcome.Failed() {
			metrics.CheckerFailure(string(outcome.Reason))
			return outcome, nil
		}
	}
	return Pass(), nil
}
