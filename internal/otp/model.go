package otp

import "time"

// Code is a one-time passcode issued to a phone number. Several unexpired
// records may exist for the same phone; only the most recently issued one is
// authoritative at verification time.
type Code struct {
	ID        string
	Phone     string
	Code      string
	Attempts  int
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer valid at the given instant.
// A code is invalid at and after its expiry timestamp.
func (c Code) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
