// Package pool - Allocation invariant tests
package pool

import (
	"math"
	"math/rand"
	"testing"

	"cloudpool/core/catalog"
	"cloudpool/core/pricing"
	"cloudpool/core/types"
)

func newAllocator() (*Allocator, *pricing.Calculator) {
	calc := pricing.NewCalculator(catalog.Default())
	return NewAllocator(calc), calc
}

func rec(sku string, qty, cost float64) types.UsageRecord {
	return types.UsageRecord{SKUID: sku, ServiceCode: sku, UsageQuantity: qty, Cost: cost, Unit: "units"}
}

func inv(id, customer string, records ...types.UsageRecord) types.Invoice {
	var total float64
	for _, r := range records {
		total += r.Cost
	}
	return types.Invoice{ID: id, CustomerName: customer, Records: records, TotalCost: total}
}

func TestAggregateUsage(t *testing.T) {
	a, _ := newAllocator()
	invoices := []types.Invoice{
		inv("i1", "acme", rec("EC2", 500, 23.20), rec("S3_STANDARD", 100, 2.30)),
		inv("i2", "globex", rec("EC2", 1000, 45.22)),
	}

	usage, standalone := a.AggregateUsage(invoices)
	if usage["EC2"] != 1500 {
		t.Errorf("EC2 usage = %v, want 1500", usage["EC2"])
	}
	if usage["S3_STANDARD"] != 100 {
		t.Errorf("S3 usage = %v, want 100", usage["S3_STANDARD"])
	}
	if want := 23.20 + 2.30 + 45.22; math.Abs(standalone-want) > 1e-9 {
		t.Errorf("standalone total = %v, want %v", standalone, want)
	}
}

// TestSharesReconstructPooledCost proves the defining allocator
// property: per-customer shares of a SKU sum to the SKU's pooled cost.
func TestSharesReconstructPooledCost(t *testing.T) {
	a, calc := newAllocator()
	invoices := []types.Invoice{
		inv("i1", "acme", rec("EC2", 500, 23.20)),
		inv("i2", "globex", rec("EC2", 1000, 46.40)),
	}

	var pooledSum float64
	for _, i := range invoices {
		pooledSum += a.CustomerSavings(i, invoices).Pooled
	}

	want := calc.Cost("EC2", 1500)
	if math.Abs(pooledSum-want) > 1e-6 {
		t.Fatalf("sum of pooled shares = %v, want Cost(EC2, 1500) = %v", pooledSum, want)
	}
}

func TestSingleInvoicePoolIsAWash(t *testing.T) {
	a, calc := newAllocator()

	// Standalone cost equals the tiered cost of the same usage, so a
	// pool of one neither saves nor loses.
	usage := 500.0
	cost := calc.Cost("EC2", usage)
	only := inv("i1", "acme", rec("EC2", usage, cost))

	s := a.CustomerSavings(only, []types.Invoice{only})
	if math.Abs(s.Pooled-cost) > 1e-9 {
		t.Errorf("pooled = %v, want full pooled cost %v", s.Pooled, cost)
	}
	if s.Savings > 1e-9 {
		t.Errorf("savings = %v, want 0 for a pool of one", s.Savings)
	}
}

func TestZeroPoolUsageContributesZero(t *testing.T) {
	a, _ := newAllocator()
	invoices := []types.Invoice{
		inv("i1", "acme", rec("EC2", 0, 10.00)),
	}

	s := a.CustomerSavings(invoices[0], invoices)
	if s.Pooled != 0 {
		t.Errorf("pooled = %v, want 0 when the SKU's pool usage is zero", s.Pooled)
	}
	if math.IsNaN(s.Pooled) || math.IsNaN(s.Savings) {
		t.Error("zero pool usage must not produce NaN")
	}
}

func TestNegativeUsageCoercedToZero(t *testing.T) {
	a, _ := newAllocator()
	invoices := []types.Invoice{
		inv("i1", "acme", rec("EC2", -50, 10.00)),
		inv("i2", "globex", rec("EC2", 100, 5.00)),
	}

	usage, standalone := a.AggregateUsage(invoices)
	if usage["EC2"] != 100 {
		t.Errorf("EC2 usage = %v, want 100 (negative usage excluded)", usage["EC2"])
	}
	// The malformed record's cost still counts toward standalone totals
	if want := 15.00; math.Abs(standalone-want) > 1e-9 {
		t.Errorf("standalone = %v, want %v", standalone, want)
	}

	s := a.CustomerSavings(invoices[0], invoices)
	if s.Pooled != 0 {
		t.Errorf("pooled = %v, want 0 share for coerced usage", s.Pooled)
	}
}

func TestUnknownSKUDoesNotAbortAggregation(t *testing.T) {
	a, _ := newAllocator()
	invoices := []types.Invoice{
		inv("i1", "acme", rec("TOTALLY_UNKNOWN", 500, 50.00)),
		inv("i2", "globex", rec("EC2", 1000, 46.40)),
	}

	stats := a.PoolStats(invoices)
	if stats.PooledCostTotal <= 0 {
		t.Errorf("pooled total = %v, want > 0 (unknown SKU priced by default table)", stats.PooledCostTotal)
	}
	if stats.TotalCustomers != 2 {
		t.Errorf("total customers = %d, want 2", stats.TotalCustomers)
	}
}

// TestEstimatedSavingsNeverNegative fuzzes random invoice sets against
// random tier tables, including tables with increasing prices where the
// pooled cost can exceed standalone.
func TestEstimatedSavingsNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		cat := catalog.New()
		skus := []string{catalog.DefaultSKU, "A", "B", "C"}
		for _, sku := range skus {
			cat.Register(catalog.Entry{SKUID: sku, Unit: "units", Tiers: randomTiers(rng)})
		}
		if err := cat.Validate(); err != nil {
			t.Fatalf("trial %d: generated catalog invalid: %v", trial, err)
		}
		a := NewAllocator(pricing.NewCalculator(cat))

		var invoices []types.Invoice
		for i := 0; i < 1+rng.Intn(5); i++ {
			var records []types.UsageRecord
			for r := 0; r < 1+rng.Intn(4); r++ {
				sku := skus[rng.Intn(len(skus))]
				records = append(records, rec(sku, rng.Float64()*5000, rng.Float64()*500))
			}
			invoices = append(invoices, inv("i", "c", records...))
		}

		stats := a.PoolStats(invoices)
		if stats.EstimatedSavings < 0 {
			t.Fatalf("trial %d: estimated savings %v < 0", trial, stats.EstimatedSavings)
		}
		if stats.SavingsPercentage < 0 {
			t.Fatalf("trial %d: savings percentage %v < 0", trial, stats.SavingsPercentage)
		}
		for _, i := range invoices {
			if s := a.CustomerSavings(i, invoices); s.Savings < 0 || s.Percentage < 0 {
				t.Fatalf("trial %d: negative customer savings %+v", trial, s)
			}
		}
	}
}

func randomTiers(rng *rand.Rand) []types.PricingTier {
	n := 1 + rng.Intn(4)
	tiers := make([]types.PricingTier, 0, n)
	min := 0.0
	for i := 0; i < n; i++ {
		max := min + 1 + rng.Float64()*2000
		if i == n-1 {
			max = math.Inf(1)
		}
		tiers = append(tiers, types.PricingTier{
			MinUsage:  min,
			MaxUsage:  max,
			UnitPrice: rng.Float64(), // prices need not decrease
		})
		min = max
	}
	return tiers
}
