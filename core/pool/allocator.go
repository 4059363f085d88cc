// Package pool aggregates usage across invoices and allocates the
// pooled tiered cost back to customers in proportion to their usage.
//
// The defining property of the allocator: for every SKU, each
// customer's share is usage_i / totalUsage * Cost(totalUsage), so the
// shares sum to the SKU's pooled cost exactly for any usage partition.
package pool

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"cloudpool/core/pricing"
	"cloudpool/core/types"
	"cloudpool/internal/logging"
)

// Allocator derives pool statistics and per-customer savings from the
// current invoice collection. It holds no state across calls.
type Allocator struct {
	calc *pricing.Calculator
}

// NewAllocator creates an allocator backed by a tiered cost calculator
func NewAllocator(calc *pricing.Calculator) *Allocator {
	return &Allocator{calc: calc}
}

// sanitizeUsage coerces negative or non-numeric quantities to zero.
// The record's cost still counts toward standalone totals; zero usage
// simply means zero share of the pooled cost.
func sanitizeUsage(q float64) float64 {
	if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}

// AggregateUsage sums usage and standalone cost across every record of
// every invoice, grouped by SKU.
func (a *Allocator) AggregateUsage(invoices []types.Invoice) (map[string]float64, float64) {
	usageBySKU := make(map[string]float64)
	var standaloneTotal float64

	for _, inv := range invoices {
		for _, r := range inv.Records {
			q := sanitizeUsage(r.UsageQuantity)
			if q != r.UsageQuantity {
				logging.Warn("invalid usage quantity coerced to zero",
					zap.String("invoice_id", inv.ID),
					zap.String("sku_id", r.SKUID),
					zap.Float64("quantity", r.UsageQuantity))
			}
			usageBySKU[r.SKUID] += q
			standaloneTotal += r.Cost
		}
	}
	return usageBySKU, standaloneTotal
}

// PoolStats computes the pool-wide snapshot: merged usage per SKU, the
// tiered cost of that merged usage, and the savings versus everyone
// paying standalone.
func (a *Allocator) PoolStats(invoices []types.Invoice) types.PoolSnapshot {
	usageBySKU, standaloneTotal := a.AggregateUsage(invoices)

	// Sum in sorted SKU order; output must be reproducible run to run
	skus := make([]string, 0, len(usageBySKU))
	for sku := range usageBySKU {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	var pooledTotal float64
	for _, sku := range skus {
		pooledTotal += a.calc.Cost(sku, usageBySKU[sku])
	}

	savings := standaloneTotal - pooledTotal
	if savings < 0 {
		savings = 0
	}
	var pct float64
	if standaloneTotal > 0 {
		pct = savings / standaloneTotal * 100
	}

	return types.PoolSnapshot{
		TotalCustomers:      len(invoices),
		UsageBySKU:          usageBySKU,
		StandaloneCostTotal: standaloneTotal,
		PooledCostTotal:     pooledTotal,
		EstimatedSavings:    savings,
		SavingsPercentage:   pct,
	}
}

// CustomerSavings computes one invoice's proportional share of the
// pooled cost. The invoice must be part of invoices; a pool of one
// pays the full pooled cost. A SKU with zero pooled usage contributes
// zero rather than dividing by zero.
func (a *Allocator) CustomerSavings(invoice types.Invoice, invoices []types.Invoice) types.CustomerSavings {
	standalone := invoice.TotalCost

	usageBySKU, _ := a.AggregateUsage(invoices)

	var pooled float64
	for _, r := range invoice.Records {
		total := usageBySKU[r.SKUID]
		if total <= 0 {
			continue
		}
		q := sanitizeUsage(r.UsageQuantity)
		pooled += q / total * a.calc.Cost(r.SKUID, total)
	}

	savings := standalone - pooled
	if savings < 0 {
		savings = 0
	}
	var pct float64
	if standalone > 0 {
		pct = savings / standalone * 100
	}

	return types.CustomerSavings{
		Standalone: standalone,
		Pooled:     pooled,
		Savings:    savings,
		Percentage: pct,
	}
}
