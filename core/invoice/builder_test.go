// Package invoice - Builder tests
package invoice

import (
	"testing"
	"time"

	"cloudpool/core/identity"
	"cloudpool/core/types"
	"cloudpool/internal/errors"
)

func records() []types.UsageRecord {
	return []types.UsageRecord{
		{SKUID: "EC2", Cost: 34.52, UsageQuantity: 744},
		{SKUID: "S3_STANDARD", Cost: 11.50, UsageQuantity: 500},
	}
}

func TestBuildSumsTotalCost(t *testing.T) {
	clock := identity.FixedClock{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	inv, err := Build("Acme Corp", "march.pdf", records(), identity.NewSequence("inv"), clock)
	if err != nil {
		t.Fatal(err)
	}

	if inv.TotalCost != 34.52+11.50 {
		t.Errorf("total cost = %v, want %v", inv.TotalCost, 34.52+11.50)
	}
	if inv.ID != "inv-000001" {
		t.Errorf("ID = %s, want inv-000001", inv.ID)
	}
	if !inv.UploadedAt.Equal(clock.T) {
		t.Errorf("uploadedAt = %v, want %v", inv.UploadedAt, clock.T)
	}
	if inv.SourceFileName != "march.pdf" {
		t.Errorf("sourceFileName = %s", inv.SourceFileName)
	}
}

func TestBuildRejectsEmptyCustomerName(t *testing.T) {
	_, err := Build("   ", "f.pdf", records(), identity.NewSequence("inv"), identity.SystemClock{})
	if err == nil {
		t.Fatal("expected an input error for a blank customer name")
	}
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("error = %v, want %v", err, errors.TypeInput)
	}
}

func TestBuildIDsAreSequential(t *testing.T) {
	ids := identity.NewSequence("inv")
	clock := identity.FixedClock{T: time.Unix(0, 0)}

	a, _ := Build("A", "", records(), ids, clock)
	b, _ := Build("B", "", records(), ids, clock)
	if a.ID == b.ID {
		t.Errorf("consecutive invoices share ID %s", a.ID)
	}
	if a.ID != "inv-000001" || b.ID != "inv-000002" {
		t.Errorf("IDs = %s, %s; want deterministic sequence", a.ID, b.ID)
	}
}
