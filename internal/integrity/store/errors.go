// Package store holds sentinels shared by the persistence implementations.
package store

import "errors"

// ErrNotFound keeps store-specific lookups consistent across the Postgres and
// in-memory implementations.
var ErrNotFound = errors.New("record not found")

// ErrInvalidRecord marks a persistence validation failure. It is fatal for
// the current request; the surrounding transaction must roll back.
var ErrInvalidRecord = errors.New("invalid record")
