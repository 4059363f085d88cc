// Package catalog - Built-in AWS tier tables
// These seed the default catalog. The numeric constants are defaults,
// not contract: deployments override them via an HCL catalog file.
package catalog

import (
	"math"

	"cloudpool/core/types"
)

func tier(min, max, price float64) types.PricingTier {
	return types.PricingTier{MinUsage: min, MaxUsage: max, UnitPrice: price}
}

func lastTier(min, price float64) types.PricingTier {
	return types.PricingTier{MinUsage: min, MaxUsage: math.Inf(1), UnitPrice: price}
}

// RegisterAWS populates the catalog with the built-in AWS SKUs
func RegisterAWS(c *Catalog) {
	// Compute. One SKU per instance-size band: the extractor picks the
	// band from a line item's cost magnitude.
	c.Register(Entry{SKUID: "EC2_T3", Service: "AmazonEC2", Unit: "hours", Tiers: []types.PricingTier{
		tier(0, 744, 0.0104),
		tier(744, 8760, 0.0094),
		lastTier(8760, 0.0083),
	}})
	c.Register(Entry{SKUID: "EC2", Service: "AmazonEC2", Unit: "hours", Tiers: []types.PricingTier{
		tier(0, 744, 0.0464),
		tier(744, 8760, 0.0418),
		lastTier(8760, 0.0372),
	}})
	c.Register(Entry{SKUID: "EC2_M5", Service: "AmazonEC2", Unit: "hours", Tiers: []types.PricingTier{
		tier(0, 744, 0.096),
		tier(744, 8760, 0.0864),
		lastTier(8760, 0.0768),
	}})

	// Storage
	c.Register(Entry{SKUID: "S3_STANDARD", Service: "AmazonS3", Unit: "GB-month", Tiers: []types.PricingTier{
		tier(0, 51200, 0.023),
		tier(51200, 512000, 0.022),
		lastTier(512000, 0.021),
	}})

	// Database
	c.Register(Entry{SKUID: "RDS_MYSQL", Service: "AmazonRDS", Unit: "hours", Tiers: []types.PricingTier{
		tier(0, 744, 0.171),
		tier(744, 8760, 0.154),
		lastTier(8760, 0.137),
	}})
	c.Register(Entry{SKUID: "DYNAMODB", Service: "AmazonDynamoDB", Unit: "GB-month", Tiers: []types.PricingTier{
		tier(0, 25, 0),
		lastTier(25, 0.25),
	}})

	// Serverless
	c.Register(Entry{SKUID: "LAMBDA_REQUESTS", Service: "AWSLambda", Unit: "requests", Tiers: []types.PricingTier{
		tier(0, 1000000, 0),
		lastTier(1000000, 0.0000002),
	}})

	// Transfer / CDN
	c.Register(Entry{SKUID: "DATA_TRANSFER_OUT", Service: "AWSDataTransfer", Unit: "GB", Tiers: []types.PricingTier{
		tier(0, 100, 0),
		tier(100, 10240, 0.09),
		tier(10240, 51200, 0.085),
		lastTier(51200, 0.07),
	}})
	c.Register(Entry{SKUID: "CLOUDFRONT", Service: "AmazonCloudFront", Unit: "GB", Tiers: []types.PricingTier{
		tier(0, 1024, 0),
		tier(1024, 10240, 0.085),
		lastTier(10240, 0.08),
	}})

	// Monitoring
	c.Register(Entry{SKUID: "CLOUDWATCH", Service: "AmazonCloudWatch", Unit: "GB", Tiers: []types.PricingTier{
		tier(0, 5, 0),
		lastTier(5, 0.5),
	}})

	// Fallback for unrecognized line items
	c.Register(Entry{SKUID: DefaultSKU, Service: "CloudGeneric", Unit: "units", Tiers: []types.PricingTier{
		tier(0, 1000, 1.0),
		tier(1000, 10000, 0.9),
		lastTier(10000, 0.8),
	}})
}

// Default returns a catalog with the built-in AWS tables registered
func Default() *Catalog {
	c := New()
	RegisterAWS(c)
	return c
}
