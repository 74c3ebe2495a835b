// Package checker implements the ordered risk-signal checks that decide a
// device's ban status. Each checker returns a tagged outcome; the chain stops
// at the first veto.
package checker

import (
	"context"

	"devicegate/internal/integrity/reputation"
)

// Input carries the per-request signals every checker receives.
type Input struct {
	Country      string
	RootedDevice bool
	IP           string
}

// Reason identifies which signal vetoed an evaluation. It selects the
// resulting ban status internally and is never surfaced to callers.
type Reason string

const (
	ReasonCountry      Reason = "country"
	ReasonRootedDevice Reason = "rooted_device"
	ReasonVPN          Reason = "vpn"
)

// Outcome is the tagged result of one checker. A zero Reason means the
// checker passed. Signals are populated by the privacy-tools checker when a
// reputation payload was resolved and parsed; they default to explicit false
// otherwise.
type Outcome struct {
	Reason  Reason
	Signals reputation.Signals
}

// Failed reports whether the checker vetoed.
func (o Outcome) Failed() bool { return o.Reason != "" }

// Pass is the successful outcome.
func Pass() Outcome { return Outcome{} }

// Fail builds a veto outcome with the given reason.
func Fail(reason Reason) Outcome { return Outcome{Reason: reason} }

// Checker is a single risk-signal evaluator. Returning an error aborts the
// whole evaluation; a veto is expressed through the Outcome, not the error.
type Checker interface {
	Evaluate(ctx context.Context, in Input) (Outcome, error)
}
