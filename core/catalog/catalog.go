// Package catalog - Volume-discount tier tables per SKU
// This is the source of truth for pooled pricing. Tier tables are
// configuration data: built-in AWS defaults can be replaced from
// external HCL files without touching the engine.
package catalog

import (
	"sort"

	"go.uber.org/zap"

	"cloudpool/core/types"
	"cloudpool/internal/logging"
)

// DefaultSKU is the designated fallback entry. Records referencing a SKU
// the catalog does not know are priced against this table so that one
// unrecognized line item never aborts a pool computation.
const DefaultSKU = "CLOUD_GENERIC"

// Entry is one catalog row: a SKU with its tier table and metadata
type Entry struct {
	// SKUID identifies the billable unit
	SKUID string

	// Service is the owning cloud service code (e.g. "AmazonEC2")
	Service string

	// Unit is the usage measure the tiers are expressed in
	Unit string

	// Tiers is the ordered, contiguous tier table; the final tier
	// has MaxUsage = +Inf
	Tiers []types.PricingTier
}

// Catalog is the registry of SKU tier tables
type Catalog struct {
	entries map[string]Entry
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
	}
}

// Register adds or replaces a catalog entry. The tier table must have
// been validated; Register panics on a nil table to catch wiring bugs.
func (c *Catalog) Register(entry Entry) {
	if len(entry.Tiers) == 0 {
		panic("catalog: entry without tiers: " + entry.SKUID)
	}
	c.entries[entry.SKUID] = entry
}

// TiersFor returns the ordered tier table for a SKU. Unknown SKUs fall
// back to the default table; the lookup never fails.
func (c *Catalog) TiersFor(skuID string) []types.PricingTier {
	if entry, ok := c.entries[skuID]; ok {
		return entry.Tiers
	}
	logging.Warn("unknown SKU, using default tier table", zap.String("sku_id", skuID))
	return c.entries[DefaultSKU].Tiers
}

// Get returns a catalog entry and whether it exists
func (c *Catalog) Get(skuID string) (Entry, bool) {
	entry, ok := c.entries[skuID]
	return entry, ok
}

// Has reports whether a SKU is registered
func (c *Catalog) Has(skuID string) bool {
	_, ok := c.entries[skuID]
	return ok
}

// SKUs returns all registered SKU IDs in sorted order
func (c *Catalog) SKUs() []string {
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks every registered tier table and that the default
// entry exists
func (c *Catalog) Validate() error {
	if !c.Has(DefaultSKU) {
		return errMissingDefault()
	}
	for _, id := range c.SKUs() {
		if err := ValidateTiers(id, c.entries[id].Tiers); err != nil {
			return err
		}
	}
	return nil
}
