// Package catalog - Tier table validation
package catalog

import (
	"cloudpool/core/types"
	"cloudpool/internal/errors"
)

func errMissingDefault() error {
	return errors.New(errors.TypeConfig, "catalog has no default SKU entry: "+DefaultSKU)
}

// ValidateTiers checks the structural contract of a tier table:
// ascending, contiguous half-open brackets starting at zero, a final
// unbounded bracket, and non-negative prices. Unit prices are NOT
// required to decrease; the engine works for any monotone table.
func ValidateTiers(skuID string, tiers []types.PricingTier) error {
	if len(tiers) == 0 {
		return errors.Newf(errors.TypeConfig, "sku %s: empty tier table", skuID)
	}
	if tiers[0].MinUsage != 0 {
		return errors.Newf(errors.TypeConfig, "sku %s: first tier must start at 0, got %g", skuID, tiers[0].MinUsage)
	}
	for i, t := range tiers {
		if t.UnitPrice < 0 {
			return errors.Newf(errors.TypeConfig, "sku %s: tier %d has negative unit price %g", skuID, i, t.UnitPrice)
		}
		last := i == len(tiers)-1
		if last {
			if !t.Unbounded() {
				return errors.Newf(errors.TypeConfig, "sku %s: final tier must be unbounded", skuID)
			}
			continue
		}
		if t.MaxUsage <= t.MinUsage {
			return errors.Newf(errors.TypeConfig, "sku %s: tier %d is empty or inverted [%g, %g)", skuID, i, t.MinUsage, t.MaxUsage)
		}
		if tiers[i+1].MinUsage != t.MaxUsage {
			return errors.Newf(errors.TypeConfig, "sku %s: tier %d is not contiguous (%g != %g)", skuID, i+1, tiers[i+1].MinUsage, t.MaxUsage)
		}
	}
	return nil
}
