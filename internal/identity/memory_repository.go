package identity

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byPhone map[string]User
	byID    map[string]User
}

// NewMemoryRepository builds an in-memory user store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byPhone: make(map[string]User),
		byID:    make(map[string]User),
	}
}

func (r *memoryRepository) InsertOrGet(_ context.Context, user User) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byPhone[user.Phone]; ok {
		return existing, false, nil
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	r.byPhone[user.Phone] = user
	r.byID[user.ID] = user
	return user, true, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byPhone[phone]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) UpdateProfile(_ context.Context, id string, update ProfileUpdate) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	user.Name = update.Name
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Location != "" {
		user.Location = update.Location
	}
	user.ProfileComplete = true
	user.UpdatedAt = time.Now().UTC()
	r.byID[id] = user
	r.byPhone[user.Phone] = user
	return user, nil
}
