package shipment

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for shipment persistence.
type Repository interface {
	// Create stores a new shipment.
	Create(ctx context.Context, s *Shipment) error

	// Get retrieves a shipment by ID.
	Get(ctx context.Context, id string) (*Shipment, error)

	// Update replaces an existing shipment.
	Update(ctx context.Context, s *Shipment) error

	// List returns shipments, optionally filtered by status, newest first.
	List(ctx context.Context, status Status) ([]*Shipment, error)
}

// InMemoryRepository is an in-memory implementation of Repository, used
// when no database is configured and in tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	shipments map[string]*Shipment
}

// NewInMemoryRepository creates a new in-memory shipment repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{shipments: make(map[string]*Shipment)}
}

// Create stores a new shipment.
func (r *InMemoryRepository) Create(_ context.Context, s *Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.shipments[s.ID] = copyShipment(s)
	return nil
}

// Get retrieves a shipment by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shipments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyShipment(s), nil
}

// Update replaces an existing shipment.
func (r *InMemoryRepository) Update(_ context.Context, s *Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[s.ID]; !ok {
		return ErrNotFound
	}
	r.shipments[s.ID] = copyShipment(s)
	return nil
}

// List returns shipments, optionally filtered by status, newest first.
func (r *InMemoryRepository) List(_ context.Context, status Status) ([]*Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Shipment, 0, len(r.shipments))
	for _, s := range r.shipments {
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, copyShipment(s))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// copyShipment creates a deep copy to prevent mutation through shared
// pointers.
func copyShipment(s *Shipment) *Shipment {
	if s == nil {
		return nil
	}

	c := *s
	if s.ShippedAt != nil {
		v := *s.ShippedAt
		c.ShippedAt = &v
	}
	if s.DeliveredAt != nil {
		v := *s.DeliveredAt
		c.DeliveredAt = &v
	}
	if s.History != nil {
		c.History = append([]TrackingEvent(nil), s.History...)
	}
	return &c
}
