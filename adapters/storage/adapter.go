// Package storage persists invoices behind a small repository
// interface. The core reads the full current collection through it and
// never holds a reference across calls; consistency during concurrent
// adds and removes is the backend's contract, not the engine's.
package storage

import (
	"context"
	"sync"

	"cloudpool/core/types"
	"cloudpool/internal/config"
	"cloudpool/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
)

// Store is the invoice repository interface
type Store interface {
	// List returns every stored invoice in upload order
	List(ctx context.Context) ([]types.Invoice, error)

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (types.Invoice, error)

	// Append stores a new invoice
	Append(ctx context.Context, inv types.Invoice) error

	// Remove deletes an invoice by ID
	Remove(ctx context.Context, id string) error

	// Close closes the store
	Close() error
}

// New creates a store for the configured backend
func New(cfg config.StorageConfig) (Store, error) {
	switch Backend(cfg.Backend) {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Directory)
	case BackendPostgres:
		return NewPostgresStore(cfg.DSN)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown storage backend: %s", cfg.Backend)
	}
}

// MemoryStore keeps invoices in memory, preserving insertion order.
// Used by tests and single-process deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	invoices []types.Invoice
	index    map[string]int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

// List returns every stored invoice in insertion order
func (s *MemoryStore) List(ctx context.Context) ([]types.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out, nil
}

// Get retrieves an invoice by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (types.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return types.Invoice{}, errors.NotFound("invoice", id)
	}
	return s.invoices[i], nil
}

// Append stores a new invoice
func (s *MemoryStore) Append(ctx context.Context, inv types.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[inv.ID]; ok {
		return errors.Newf(errors.TypeStorage, "invoice already stored: %s", inv.ID)
	}
	s.index[inv.ID] = len(s.invoices)
	s.invoices = append(s.invoices, inv)
	return nil
}

// Remove deletes an invoice by ID
func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return errors.NotFound("invoice", id)
	}
	s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.invoices); j++ {
		s.index[s.invoices[j].ID] = j
	}
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
