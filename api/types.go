// Package api - Request and response types
package api

import "cloudpool/core/types"

// UploadInvoiceRequest is the payload for POST /invoices. RawText is
// the invoice content as extracted upstream (PDF-to-text happens before
// this service); Fragments optionally carry per-glyph positions.
type UploadInvoiceRequest struct {
	CustomerName   string                     `json:"customer_name"`
	RawText        string                     `json:"raw_text"`
	SourceFileName string                     `json:"source_file_name,omitempty"`
	Fragments      []types.PositionedFragment `json:"fragments,omitempty"`
}

// InvoiceResponse wraps a stored invoice
type InvoiceResponse struct {
	Invoice types.Invoice `json:"invoice"`
}

// InvoiceListResponse lists stored invoices
type InvoiceListResponse struct {
	Invoices []types.Invoice `json:"invoices"`
	Count    int             `json:"count"`
}

// SavingsResponse is one customer's pooled-savings breakdown
type SavingsResponse struct {
	InvoiceID    string                `json:"invoice_id"`
	CustomerName string                `json:"customer_name"`
	Savings      types.CustomerSavings `json:"savings"`
}

// PoolResponse is the pool-wide statistics snapshot
type PoolResponse struct {
	Pool types.PoolSnapshot `json:"pool"`
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
