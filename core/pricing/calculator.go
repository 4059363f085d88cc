// Package pricing computes tiered costs against the SKU catalog.
// All tier math lives here; callers declare usage, they do not price it.
package pricing

import (
	"math"

	"cloudpool/core/catalog"
)

// Calculator prices total usage of a SKU under its volume tier table
type Calculator struct {
	catalog *catalog.Catalog
}

// NewCalculator creates a calculator backed by a catalog
func NewCalculator(c *catalog.Catalog) *Calculator {
	return &Calculator{catalog: c}
}

// Cost returns the cost of totalUsage units of a SKU. Tiers are
// half-open [min, max) with an unbounded final tier, so no unit is
// double-counted or skipped at a boundary. Unknown SKUs price against
// the catalog's default table. Cost is monotone non-decreasing in
// totalUsage and Cost(sku, 0) == 0.
func (c *Calculator) Cost(skuID string, totalUsage float64) float64 {
	if totalUsage <= 0 || math.IsNaN(totalUsage) {
		return 0
	}

	var cost float64
	accountedFor := 0.0
	for _, t := range c.catalog.TiersFor(skuID) {
		upper := math.Min(t.MaxUsage, totalUsage)
		lower := math.Max(t.MinUsage, accountedFor)
		inTier := upper - lower
		if inTier <= 0 {
			continue
		}
		cost += inTier * t.UnitPrice
		accountedFor += inTier
		if accountedFor >= totalUsage {
			break
		}
	}
	return cost
}

// BaselineUnitPrice returns the first nonzero tier price of a SKU. The
// extractor divides a bare cost by it to estimate a usage quantity when
// the invoice text states no quantity. Zero when every tier is free.
func (c *Calculator) BaselineUnitPrice(skuID string) float64 {
	for _, t := range c.catalog.TiersFor(skuID) {
		if t.UnitPrice > 0 {
			return t.UnitPrice
		}
	}
	return 0
}
