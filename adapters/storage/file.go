// Package storage - File-backed invoice store
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloudpool/core/types"
	"cloudpool/internal/errors"
)

// FileStore persists each invoice as one JSON file in a directory.
// Listing orders by upload time, then ID, so a rebuilt pool is stable.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New(errors.TypeConfig, "file store requires a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Storage("creating invoice directory", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// List returns every stored invoice ordered by upload time, then ID
func (s *FileStore) List(ctx context.Context) ([]types.Invoice, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Storage("reading invoice directory", err)
	}

	invoices := make([]types.Invoice, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, errors.Storage("reading invoice file "+entry.Name(), err)
		}
		var inv types.Invoice
		if err := json.Unmarshal(data, &inv); err != nil {
			return nil, errors.Storage("decoding invoice file "+entry.Name(), err)
		}
		invoices = append(invoices, inv)
	}

	sort.Slice(invoices, func(i, j int) bool {
		if !invoices[i].UploadedAt.Equal(invoices[j].UploadedAt) {
			return invoices[i].UploadedAt.Before(invoices[j].UploadedAt)
		}
		return invoices[i].ID < invoices[j].ID
	})
	return invoices, nil
}

// Get retrieves an invoice by ID
func (s *FileStore) Get(ctx context.Context, id string) (types.Invoice, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return types.Invoice{}, errors.NotFound("invoice", id)
		}
		return types.Invoice{}, errors.Storage("reading invoice "+id, err)
	}
	var inv types.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return types.Invoice{}, errors.Storage("decoding invoice "+id, err)
	}
	return inv, nil
}

// Append stores a new invoice
func (s *FileStore) Append(ctx context.Context, inv types.Invoice) error {
	path := s.path(inv.ID)
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.TypeStorage, "invoice already stored: %s", inv.ID)
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return errors.Storage("encoding invoice "+inv.ID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Storage("writing invoice "+inv.ID, err)
	}
	return nil
}

// Remove deletes an invoice by ID
func (s *FileStore) Remove(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return errors.NotFound("invoice", id)
	}
	if err != nil {
		return errors.Storage("removing invoice "+id, err)
	}
	return nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
