package otp

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepository struct {
	mu    sync.RWMutex
	codes map[string][]Code
}

// NewMemoryRepository builds an in-memory code store for development and
// tests. Records are kept in issue order per phone number.
func NewMemoryRepository() Repository {
	return &memoryRepository{codes: make(map[string][]Code)}
}

func (r *memoryRepository) Insert(_ context.Context, code Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID == "" {
		code.ID = primitive.NewObjectID().Hex()
	}
	r.codes[code.Phone] = append(r.codes[code.Phone], code)
	return nil
}

func (r *memoryRepository) LatestByPhone(_ context.Context, phone string) (Code, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := r.codes[phone]
	if len(records) == 0 {
		return Code{}, ErrNotFound
	}
	return records[len(records)-1], nil
}

func (r *memoryRepository) IncrementAttempts(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for phone, records := range r.codes {
		for i := range records {
			if records[i].ID == id {
				records[i].Attempts++
				r.codes[phone] = records
				return nil
			}
		}
	}
	return ErrNotFound
}

func (r *memoryRepository) DeleteByPhone(_ context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, phone)
	return nil
}
