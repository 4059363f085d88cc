// Package types - Invoice and usage record types
package types

import "time"

// UsageRecord is one line of attributed spend on an invoice
type UsageRecord struct {
	// SKUID identifies the billable unit in the pricing catalog
	SKUID string `json:"sku_id"`

	// ServiceCode is the cloud service the record belongs to (e.g. "AmazonEC2")
	ServiceCode string `json:"service_code"`

	// UsageQuantity is the consumed amount in Unit
	UsageQuantity float64 `json:"usage_quantity"`

	// Cost is the billed amount in USD
	Cost float64 `json:"cost"`

	// Region is the billing region
	Region string `json:"region"`

	// Unit is the usage measure (e.g. "hours", "GB-month")
	Unit string `json:"unit"`

	// Estimated marks a quantity derived from cost via the SKU's baseline
	// unit price rather than read from the invoice text
	Estimated bool `json:"estimated,omitempty"`
}

// Invoice groups the usage records extracted from one uploaded bill.
// Invoices are immutable after construction; the repository owns removal.
type Invoice struct {
	// ID uniquely identifies this invoice
	ID string `json:"id"`

	// CustomerName is the owning customer (never empty)
	CustomerName string `json:"customer_name"`

	// Records are the extracted line items, in document order
	Records []UsageRecord `json:"records"`

	// TotalCost is the sum of record costs
	TotalCost float64 `json:"total_cost"`

	// UploadedAt is when the invoice entered the pool
	UploadedAt time.Time `json:"uploaded_at"`

	// SourceFileName is the uploaded file the text came from
	SourceFileName string `json:"source_file_name"`
}

// PositionedFragment is a piece of invoice text with page coordinates,
// as produced by an upstream PDF text extractor. Y grows downward.
type PositionedFragment struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	PageIndex int     `json:"page_index"`
}
