// Package extract - Service name to SKU mapping
package extract

import (
	"math"
	"regexp"

	"cloudpool/core/catalog"
)

// costBand picks a SKU for a line item by the magnitude of its cost.
// A small monthly EC2 bill points at a burstable instance SKU; a large
// one at a general-purpose size.
type costBand struct {
	// maxCost is the exclusive upper bound of the band (+Inf last)
	maxCost float64

	skuID string
}

// serviceEntry maps the printed names of one cloud service to its
// candidate SKUs
type serviceEntry struct {
	// code is the canonical service code (e.g. "AmazonEC2")
	code string

	// unit is the canonical usage measure for the service
	unit string

	// names are the printed forms found on invoices, longest first
	names []string

	// bands are the candidate SKUs by ascending cost magnitude
	bands []costBand
}

// skuFor picks the SKU band a cost falls into
func (s *serviceEntry) skuFor(cost float64) string {
	for _, b := range s.bands {
		if cost < b.maxCost {
			return b.skuID
		}
	}
	return s.bands[len(s.bands)-1].skuID
}

// nameRef is one compiled service-name pattern. The table scans names
// in a fixed order so extraction is reproducible.
type nameRef struct {
	re    *regexp.Regexp
	entry *serviceEntry
}

// serviceTable is the static registry of recognizable service names
type serviceTable struct {
	entries []*serviceEntry
	names   []nameRef

	// generic is the entry the fallback strategy emits records for
	generic *serviceEntry
}

func (t *serviceTable) add(entry *serviceEntry) {
	t.entries = append(t.entries, entry)
	for _, name := range entry.names {
		t.names = append(t.names, nameRef{
			re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
			entry: entry,
		})
	}
}

// matchLine returns the first table entry whose name appears in the line
func (t *serviceTable) matchLine(line string) (*serviceEntry, bool) {
	for _, ref := range t.names {
		if ref.re.MatchString(line) {
			return ref.entry, true
		}
	}
	return nil, false
}

func defaultServiceTable() *serviceTable {
	inf := math.Inf(1)
	t := &serviceTable{}

	t.add(&serviceEntry{
		code:  "AmazonEC2",
		unit:  "hours",
		names: []string{"Amazon Elastic Compute Cloud", "Elastic Compute Cloud", "Amazon EC2", "EC2"},
		bands: []costBand{
			{maxCost: 25, skuID: "EC2_T3"},
			{maxCost: 250, skuID: "EC2"},
			{maxCost: inf, skuID: "EC2_M5"},
		},
	})
	t.add(&serviceEntry{
		code:  "AmazonS3",
		unit:  "GB-month",
		names: []string{"Amazon Simple Storage Service", "Simple Storage Service", "Amazon S3", "S3"},
		bands: []costBand{{maxCost: inf, skuID: "S3_STANDARD"}},
	})
	t.add(&serviceEntry{
		code:  "AmazonRDS",
		unit:  "hours",
		names: []string{"Amazon Relational Database Service", "Relational Database Service", "Amazon RDS", "RDS"},
		bands: []costBand{{maxCost: inf, skuID: "RDS_MYSQL"}},
	})
	t.add(&serviceEntry{
		code:  "AWSLambda",
		unit:  "requests",
		names: []string{"AWS Lambda", "Lambda"},
		bands: []costBand{{maxCost: inf, skuID: "LAMBDA_REQUESTS"}},
	})
	t.add(&serviceEntry{
		code:  "AmazonCloudFront",
		unit:  "GB",
		names: []string{"Amazon CloudFront", "CloudFront"},
		bands: []costBand{{maxCost: inf, skuID: "CLOUDFRONT"}},
	})
	t.add(&serviceEntry{
		code:  "AWSDataTransfer",
		unit:  "GB",
		names: []string{"AWS Data Transfer", "Data Transfer"},
		bands: []costBand{{maxCost: inf, skuID: "DATA_TRANSFER_OUT"}},
	})
	t.add(&serviceEntry{
		code:  "AmazonDynamoDB",
		unit:  "GB-month",
		names: []string{"Amazon DynamoDB", "DynamoDB"},
		bands: []costBand{{maxCost: inf, skuID: "DYNAMODB"}},
	})
	t.add(&serviceEntry{
		code:  "AmazonCloudWatch",
		unit:  "GB",
		names: []string{"Amazon CloudWatch", "CloudWatch"},
		bands: []costBand{{maxCost: inf, skuID: "CLOUDWATCH"}},
	})

	t.generic = &serviceEntry{
		code:  "CloudGeneric",
		unit:  "units",
		bands: []costBand{{maxCost: inf, skuID: catalog.DefaultSKU}},
	}

	return t
}
