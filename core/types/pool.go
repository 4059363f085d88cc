// Package types - Derived pool statistics
package types

// PoolSnapshot is the derived view of the whole invoice pool. It is
// recomputed from the current invoice collection on every request and
// never persisted; any invoice add or remove invalidates it.
type PoolSnapshot struct {
	// TotalCustomers is the number of invoices in the pool
	TotalCustomers int `json:"total_customers"`

	// UsageBySKU is total pooled usage per SKU
	UsageBySKU map[string]float64 `json:"usage_by_sku"`

	// StandaloneCostTotal is what all customers pay separately
	StandaloneCostTotal float64 `json:"standalone_cost_total"`

	// PooledCostTotal is the tiered cost of the merged usage
	PooledCostTotal float64 `json:"pooled_cost_total"`

	// EstimatedSavings is max(0, standalone - pooled)
	EstimatedSavings float64 `json:"estimated_savings"`

	// SavingsPercentage is savings relative to standalone cost
	SavingsPercentage float64 `json:"savings_percentage"`
}

// CustomerSavings is one customer's proportional share of the pooled cost
type CustomerSavings struct {
	// Standalone is the invoice's stated total
	Standalone float64 `json:"standalone"`

	// Pooled is the customer's share of the pool's tiered cost
	Pooled float64 `json:"pooled"`

	// Savings is max(0, Standalone - Pooled)
	Savings float64 `json:"savings"`

	// Percentage is Savings / Standalone * 100 (0 when Standalone is 0)
	Percentage float64 `json:"percentage"`
}
