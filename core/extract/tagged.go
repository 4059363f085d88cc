// Package extract - Tagged-service strategy
package extract

import "cloudpool/core/types"

// taggedStrategy scans the whole text for known service names followed,
// within a bounded lookahead window, by a currency amount and optionally
// a quantity-with-unit token. The cost magnitude picks the instance-size
// SKU when a service offers several.
type taggedStrategy struct {
	env *env
}

func (s *taggedStrategy) Name() string { return "tagged-service" }

func (s *taggedStrategy) Match(doc *Document) []types.UsageRecord {
	var out []types.UsageRecord
	for _, ref := range s.env.services.names {
		for _, loc := range ref.re.FindAllStringIndex(doc.Text, -1) {
			window := lookahead(doc.Text, loc[1], s.env.cfg.LookaheadChars)
			cost, ok := findAmount(window)
			if !ok {
				continue
			}
			qty, unit, hasQty := findQuantity(window)
			out = append(out, s.env.record(ref.entry, cost, qty, unit, hasQty))
		}
	}
	return out
}

func lookahead(text string, from, n int) string {
	to := from + n
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}
