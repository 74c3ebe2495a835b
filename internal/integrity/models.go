// Package integrity holds the domain model for device ban-status evaluation.
package integrity

import "time"

// BanStatus classifies a device. Banned is terminal: once a device is banned
// no evaluation ever changes it back.
type BanStatus string

const (
	BanStatusBanned    BanStatus = "banned"
	BanStatusNotBanned BanStatus = "not_banned"
)

// Valid reports whether s is one of the two persistable statuses.
func (s BanStatus) Valid() bool {
	return s == BanStatusBanned || s == BanStatusNotBanned
}

// Device is one tracked device, keyed by its advertising identifier.
// A device loaded before its first evaluation has an empty BanStatus; the
// store never persists that state.
type Device struct {
	IDFA      string
	BanStatus BanStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IntegrityLog is an immutable record of one evaluation outcome.
// IP is empty when the caller address was absent or not a syntactically valid
// IP; it is stored as NULL in that case. The boolean flags are always
// explicit: absent risk data resolves to false, never null.
type IntegrityLog struct {
	ID           int64
	IDFA         string
	BanStatus    BanStatus
	IP           string
	RootedDevice bool
	Country      string
	VPN          bool
	Tor          bool
	CreatedAt    time.Time
}

// CheckInput carries the signals extracted by the request boundary for one
// evaluation.
type CheckInput struct {
	IDFA         string
	RootedDevice bool
	IP           string
	Country      string
}
