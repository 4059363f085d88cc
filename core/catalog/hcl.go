// Package catalog - External HCL tier tables
// Tier tables are configuration: an HCL catalog file can replace or
// extend the built-in SKUs.
//
//	sku "EC2" {
//	  service = "AmazonEC2"
//	  unit    = "hours"
//	  tier { min = 0   max = 744  price = "0.0464" }
//	  tier { min = 744 price = "0.0418" }
//	}
//
// A tier without max is unbounded and must come last. Prices are quoted
// strings so they survive decimal-exact parsing.
package catalog

import (
	"math"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cloudpool/core/types"
	"cloudpool/internal/errors"
	"cloudpool/internal/logging"
)

type catalogFile struct {
	SKUs []skuBlock `hcl:"sku,block"`
}

type skuBlock struct {
	ID      string      `hcl:"id,label"`
	Service string      `hcl:"service,optional"`
	Unit    string      `hcl:"unit,optional"`
	Tiers   []tierBlock `hcl:"tier,block"`
}

type tierBlock struct {
	Min   float64  `hcl:"min"`
	Max   *float64 `hcl:"max,optional"`
	Price string   `hcl:"price"`
}

// LoadHCL merges the SKU tables from an HCL catalog file into the
// catalog, replacing any built-in entry with the same SKU ID.
func (c *Catalog) LoadHCL(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return errors.Config("parsing catalog file "+path, diags)
	}

	var cf catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cf); diags.HasErrors() {
		return errors.Config("decoding catalog file "+path, diags)
	}

	for _, sku := range cf.SKUs {
		tiers := make([]types.PricingTier, 0, len(sku.Tiers))
		for _, t := range sku.Tiers {
			price, err := decimal.NewFromString(t.Price)
			if err != nil {
				return errors.Newf(errors.TypeConfig, "sku %s: bad price %q: %v", sku.ID, t.Price, err)
			}
			max := math.Inf(1)
			if t.Max != nil {
				max = *t.Max
			}
			tiers = append(tiers, types.PricingTier{
				MinUsage:  t.Min,
				MaxUsage:  max,
				UnitPrice: price.InexactFloat64(),
			})
		}
		if err := ValidateTiers(sku.ID, tiers); err != nil {
			return err
		}
		c.Register(Entry{
			SKUID:   sku.ID,
			Service: sku.Service,
			Unit:    sku.Unit,
			Tiers:   tiers,
		})
		logging.Debug("loaded SKU tier table", zap.String("sku_id", sku.ID), zap.Int("tiers", len(tiers)))
	}

	return nil
}
