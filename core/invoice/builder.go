// Package invoice assembles immutable Invoice entities from extracted
// usage records. ID and timestamp sources are injected; the builder
// never reads the wall clock itself.
package invoice

import (
	"strings"

	"cloudpool/core/identity"
	"cloudpool/core/types"
	"cloudpool/internal/errors"
)

// Build creates an Invoice from extracted records. The customer name
// must be non-empty; TotalCost is the sum of record costs.
func Build(customerName, sourceFileName string, records []types.UsageRecord, ids identity.Generator, clock identity.Clock) (types.Invoice, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return types.Invoice{}, errors.Input("customer name must not be empty")
	}

	var total float64
	for _, r := range records {
		total += r.Cost
	}

	return types.Invoice{
		ID:             ids.NextID(),
		CustomerName:   name,
		Records:        records,
		TotalCost:      total,
		UploadedAt:     clock.Now(),
		SourceFileName: sourceFileName,
	}, nil
}
