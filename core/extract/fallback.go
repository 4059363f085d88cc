// Package extract - Fallback strategy
package extract

import "cloudpool/core/types"

// fallbackStrategy emits one generic record from the first plausible
// currency amount in the text. It runs only when every other strategy
// produced nothing: an invoice that plainly contains monetary figures
// must never come out silently empty.
type fallbackStrategy struct {
	env *env
}

func (s *fallbackStrategy) Name() string { return "fallback-amount" }

func (s *fallbackStrategy) Match(doc *Document) []types.UsageRecord {
	cost, ok := findAmount(doc.Text)
	if !ok {
		return nil
	}
	return []types.UsageRecord{s.env.record(s.env.services.generic, cost, 0, "", false)}
}
