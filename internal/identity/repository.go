package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no user matches the lookup key.
var ErrNotFound = errors.New("user not found")

// Repository persists users. Phone numbers are globally unique; InsertOrGet
// resolves the create-or-fetch race by returning the already existing user
// when a concurrent caller won the insert.
type Repository interface {
	InsertOrGet(ctx context.Context, user User) (User, bool, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (User, error)
}
