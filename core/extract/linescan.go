// Package extract - Line-scan strategy
package extract

import "cloudpool/core/types"

// lineScanStrategy walks the text line by line. A line naming a known
// service is paired with the first currency amount found on that line
// or within a bounded number of following lines.
type lineScanStrategy struct {
	env *env
}

func (s *lineScanStrategy) Name() string { return "line-scan" }

func (s *lineScanStrategy) Match(doc *Document) []types.UsageRecord {
	return s.env.scanLines(doc.Lines)
}

// scanLines implements the service/cost line matching shared by the
// line-scan and position-grouped strategies.
func (e *env) scanLines(lines []string) []types.UsageRecord {
	var out []types.UsageRecord
	for i, line := range lines {
		entry, ok := e.services.matchLine(line)
		if !ok {
			continue
		}

		var cost float64
		found := false
		for j := i; j < len(lines) && j <= i+e.cfg.LookaheadLines; j++ {
			if c, ok := findAmount(lines[j]); ok {
				cost, found = c, true
				break
			}
		}
		if !found {
			continue
		}

		qty, unit, hasQty := findQuantity(line)
		out = append(out, e.record(entry, cost, qty, unit, hasQty))
	}
	return out
}
