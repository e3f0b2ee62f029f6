package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"address-api/internal/models"
)

// MemoryRepository keeps addresses in process memory. It backs tests and the
// "memory" store driver; contents are lost on restart.
type MemoryRepository struct {
	mu        sync.RWMutex
	addresses map[int64]models.Address
	nextID    int64
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{addresses: make(map[int64]models.Address)}
}

func (r *MemoryRepository) Create(ctx context.Context, in models.AddressInput) (models.Address, error) {
	if err := ctx.Err(); err != nil {
		return models.Address{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	a := in.ToAddress(r.nextID)
	r.addresses[a.ID] = a
	return a, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int64, in models.AddressInput) (models.Address, error) {
	if err := ctx.Err(); err != nil {
		return models.Address{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return models.Address{}, fmt.Errorf("repository: address %d: %w", id, models.ErrNotFound)
	}
	a := in.ToAddress(id)
	r.addresses[id] = a
	return a, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return fmt.Errorf("repository: address %d: %w", id, models.ErrNotFound)
	}
	delete(r.addresses, id)
	return nil
}

// List returns a snapshot ordered by id; later writes do not affect it.
func (r *MemoryRepository) List(ctx context.Context) ([]models.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	addresses := make([]models.Address, 0, len(r.addresses))
	for _, id := range slices.Sorted(maps.Keys(r.addresses)) {
		addresses = append(addresses, r.addresses[id])
	}
	return addresses, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
