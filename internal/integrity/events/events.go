// Package events publishes integrity_log_created domain events so other data
// sources can consume evaluation outcomes without querying this service's
// database. Delivery is best-effort: the evaluation request never blocks on,
// or fails because of, the broker.
package events

import "time"

// EventName and EventVersion identify the published schema.
const (
	EventName    = "integrity_log_created"
	EventVersion = "1.0.0"
)

// IntegrityLogCreated is the payload published for each persisted audit
// entry.
type IntegrityLogCreated struct {
	Name    string                  `json:"name"`
	Version string                  `json:"version"`
	Data    IntegrityLogCreatedData `json:"data"`
}

// IntegrityLogCreatedData mirrors the persisted integrity log entry.
type IntegrityLogCreatedData struct {
	IDFA         string    `json:"idfa"`
	BanStatus    string    `json:"ban_status"`
	IP           string    `json:"ip,omitempty"`
	RootedDevice bool      `json:"rooted_device"`
	Country      string    `json:"country,omitempty"`
	VPN          bool      `json:"vpn"`
	Tor          bool      `json:"tor"`
	CreatedAt    time.Time `json:"created_at"`
}

// New builds the versioned event envelope for one audit entry.
func New(data IntegrityLogCreatedData) IntegrityLogCreated {
	return IntegrityLogCreated{Name: EventName, Version: EventVersion, Data: data}
}
