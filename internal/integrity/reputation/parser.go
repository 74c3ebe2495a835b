// Package reputation resolves VPN/Tor reputation payloads for an IP address,
// either from the shared cache or from the external provider, and parses them
// into structured signals.
package reputation

import (
	"encoding/json"
	"fmt"
)

// Signals are the structured risk flags extracted from a reputation payload.
// Flags missing from the payload stay false.
type Signals struct {
	VPN bool
	Tor bool
}

// Risky reports whether either privacy-tool flag is set.
func (s Signals) Risky() bool {
	return s.VPN || s.Tor
}

// Parse extracts the nested security flags from a raw provider payload.
// Absent or differently-typed keys default to false. A body that is not a
// JSON object at all is a parse failure; callers are expected to degrade to
// "no risk detected" rather than fail the evaluation.
func Parse(raw string) (Signals, error) {
	var payload struct {
		Security struct {
			VPN bool `json:"vpn"`
			Tor bool `json:"tor"`
		} `json:"security"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Signals{}, fmt.Errorf("parse reputation payload: %w", err)
	}
	return Signals{VPN: payload.Security.VPN, Tor: payload.Security.Tor}, nil
}
