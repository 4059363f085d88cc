// Package types - Shared data model for the pooling engine
package types

import "math"

// PricingTier is one volume bracket of a SKU's tier table.
// Usage in the half-open interval [MinUsage, MaxUsage) is billed at
// UnitPrice. The final tier of a table has MaxUsage = +Inf.
type PricingTier struct {
	// MinUsage is the inclusive lower bound of the bracket
	MinUsage float64 `json:"min_usage"`

	// MaxUsage is the exclusive upper bound (+Inf = unlimited)
	MaxUsage float64 `json:"max_usage"`

	// UnitPrice is the price per unit within this bracket
	UnitPrice float64 `json:"unit_price"`
}

// Unbounded reports whether the tier has no upper limit
func (t PricingTier) Unbounded() bool {
	return math.IsInf(t.MaxUsage, 1)
}

// Width returns the size of the bracket (+Inf for the last tier)
func (t PricingTier) Width() float64 {
	return t.MaxUsage - t.MinUsage
}
