package model

import "time"

// TrackerKey is a credential that lets a user announce to the private tracker.
type TrackerKey struct {
	// Key is the opaque credential string handed out by the tracker.
	Key string `json:"key"`

	// ValidUntil is the instant the key expires.
	ValidUntil time.Time `json:"valid_until"`
}

// ValidFor reports whether the key is still valid for at least d after now.
func (k TrackerKey) ValidFor(now time.Time, d time.Duration) bool {
	return k.ValidUntil.After(now.Add(d))
}
