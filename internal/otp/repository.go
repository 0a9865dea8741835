package otp

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a phone number has no code records.
var ErrNotFound = errors.New("code not found")

// Repository persists one-time code records. Expired records are garbage
// collected by the store; a successful verification deletes every record for
// the phone number in one call.
type Repository interface {
	Insert(ctx context.Context, code Code) error
	LatestByPhone(ctx context.Context, phone string) (Code, error)
	IncrementAttempts(ctx context.Context, id string) error
	DeleteByPhone(ctx context.Context, phone string) error
}
