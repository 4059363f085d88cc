// Package storage - Repository backend tests
package storage

import (
	"context"
	"testing"
	"time"

	"cloudpool/core/types"
	"cloudpool/internal/config"
	"cloudpool/internal/errors"
)

func invoiceAt(id string, uploaded time.Time) types.Invoice {
	return types.Invoice{
		ID:           id,
		CustomerName: "Acme Corp",
		Records: []types.UsageRecord{
			{SKUID: "EC2", ServiceCode: "AmazonEC2", UsageQuantity: 744, Cost: 34.52, Unit: "hours"},
		},
		TotalCost:  34.52,
		UploadedAt: uploaded,
	}
}

func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := store.Append(ctx, invoiceAt("b", base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(ctx, invoiceAt("a", base)); err != nil {
		t.Fatal(err)
	}

	if err := store.Append(ctx, invoiceAt("a", base)); err == nil {
		t.Error("duplicate append should fail")
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalCost != 34.52 || len(got.Records) != 1 {
		t.Errorf("round-tripped invoice mangled: %+v", got)
	}

	if _, err := store.Get(ctx, "missing"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("missing invoice error = %v, want NOT_FOUND", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("list returned %d invoices, want 2", len(all))
	}

	if err := store.Remove(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, "b"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("double remove error = %v, want NOT_FOUND", err)
	}

	all, _ = store.List(ctx)
	if len(all) != 1 || all[0].ID != "a" {
		t.Errorf("after removal list = %+v, want just invoice a", all)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStorePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Now()
	for _, id := range []string{"x", "y", "z"} {
		if err := s.Append(ctx, invoiceAt(id, base)); err != nil {
			t.Fatal(err)
		}
	}
	all, _ := s.List(ctx)
	if all[0].ID != "x" || all[1].ID != "y" || all[2].ID != "z" {
		t.Errorf("insertion order not preserved: %v, %v, %v", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runStoreContract(t, store)
}

func TestFileStoreOrdersByUploadTime(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Appended out of order; listing must sort by upload time
	_ = store.Append(ctx, invoiceAt("late", base.Add(2*time.Hour)))
	_ = store.Append(ctx, invoiceAt("early", base))

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if all[0].ID != "early" || all[1].ID != "late" {
		t.Errorf("list order = %s, %s; want early, late", all[0].ID, all[1].ID)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(config.StorageConfig{Backend: "bogus"})
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("unknown backend error = %v, want CONFIG_ERROR", err)
	}
}
