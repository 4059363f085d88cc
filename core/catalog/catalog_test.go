// Package catalog - Catalog and tier table validation tests
package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"cloudpool/core/types"
)

func TestDefaultCatalogValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}
}

func TestTiersForUnknownSKUFallsBack(t *testing.T) {
	c := Default()

	got := c.TiersFor("NOT_A_SKU")
	want := c.TiersFor(DefaultSKU)
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("unknown SKU did not fall back to the default table")
	}
}

func TestValidateTiersRejectsMalformedTables(t *testing.T) {
	inf := math.Inf(1)
	cases := []struct {
		name  string
		tiers []types.PricingTier
	}{
		{"empty", nil},
		{"first tier not at zero", []types.PricingTier{
			{MinUsage: 10, MaxUsage: inf, UnitPrice: 1},
		}},
		{"bounded final tier", []types.PricingTier{
			{MinUsage: 0, MaxUsage: 100, UnitPrice: 1},
		}},
		{"gap between tiers", []types.PricingTier{
			{MinUsage: 0, MaxUsage: 100, UnitPrice: 1},
			{MinUsage: 200, MaxUsage: inf, UnitPrice: 1},
		}},
		{"inverted tier", []types.PricingTier{
			{MinUsage: 0, MaxUsage: 0, UnitPrice: 1},
			{MinUsage: 0, MaxUsage: inf, UnitPrice: 1},
		}},
		{"negative price", []types.PricingTier{
			{MinUsage: 0, MaxUsage: inf, UnitPrice: -0.5},
		}},
	}

	for _, tc := range cases {
		if err := ValidateTiers("X", tc.tiers); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}

func TestValidateTiersAllowsIncreasingPrices(t *testing.T) {
	// A genuine volume discount decreases per-unit price, but the
	// engine accepts any monotone table.
	tiers := []types.PricingTier{
		{MinUsage: 0, MaxUsage: 100, UnitPrice: 0.10},
		{MinUsage: 100, MaxUsage: math.Inf(1), UnitPrice: 0.20},
	}
	if err := ValidateTiers("X", tiers); err != nil {
		t.Errorf("increasing prices should validate, got %v", err)
	}
}

func TestLoadHCLOverride(t *testing.T) {
	src := `
sku "EC2" {
  service = "AmazonEC2"
  unit    = "hours"

  tier {
    min   = 0
    max   = 500
    price = "0.05"
  }

  tier {
    min   = 500
    price = "0.04"
  }
}

sku "CUSTOM_GPU" {
  service = "AmazonEC2"
  unit    = "hours"

  tier {
    min   = 0
    price = "3.06"
  }
}
`
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	c := Default()
	if err := c.LoadHCL(path); err != nil {
		t.Fatalf("LoadHCL: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("catalog invalid after override: %v", err)
	}

	ec2 := c.TiersFor("EC2")
	if len(ec2) != 2 || ec2[0].UnitPrice != 0.05 || ec2[0].MaxUsage != 500 {
		t.Errorf("EC2 override not applied: %+v", ec2)
	}
	if !ec2[1].Unbounded() {
		t.Errorf("final EC2 tier should be unbounded")
	}

	gpu, ok := c.Get("CUSTOM_GPU")
	if !ok {
		t.Fatal("CUSTOM_GPU not registered")
	}
	if gpu.Tiers[0].UnitPrice != 3.06 {
		t.Errorf("CUSTOM_GPU price = %v, want 3.06", gpu.Tiers[0].UnitPrice)
	}
}

func TestLoadHCLRejectsBadTables(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad price", `
sku "X" {
  tier {
    min   = 0
    price = "not-a-number"
  }
}`},
		{"gap", `
sku "X" {
  tier {
    min   = 0
    max   = 100
    price = "0.1"
  }
  tier {
    min   = 500
    price = "0.1"
  }
}`},
	}

	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "catalog.hcl")
		if err := os.WriteFile(path, []byte(tc.src), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Default().LoadHCL(path); err == nil {
			t.Errorf("%s: expected load error, got nil", tc.name)
		}
	}
}
