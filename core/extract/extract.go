// Package extract turns raw invoice text into normalized usage records.
//
// Extraction is an ordered list of independent strategies sharing one
// interface, composed with a deduplication step. New strategies are
// added by appending to the list, never by growing one of them. A
// single fallback strategy runs only when the list produces nothing,
// so text that plainly contains monetary figures is never rejected.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"cloudpool/core/pricing"
	"cloudpool/core/types"
	"cloudpool/internal/errors"
	"cloudpool/internal/logging"
)

// Config contains extraction tuning knobs
type Config struct {
	// LookaheadChars is the window after a service name in which the
	// tagged strategy searches for a currency amount
	LookaheadChars int

	// LookaheadLines is how many lines past a service line the
	// line-scan strategy searches for a cost
	LookaheadLines int

	// YQuantum is the vertical grouping step for positioned fragments
	YQuantum float64

	// Region is attributed to records; invoices carry no region metadata
	Region string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		LookaheadChars: 160,
		LookaheadLines: 3,
		YQuantum:       2.0,
		Region:         "us-east-1",
	}
}

// Document is the normalized input handed to strategies
type Document struct {
	// Text is the raw invoice text
	Text string

	// Lines are the non-empty trimmed lines of Text
	Lines []string

	// Fragments are optional per-glyph position metadata
	Fragments []types.PositionedFragment
}

func newDocument(text string, frags []types.PositionedFragment) *Document {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return &Document{Text: text, Lines: lines, Fragments: frags}
}

// Strategy is one independent way of pulling usage records out of an
// invoice document. Strategies must be deterministic: same document,
// same records, every invocation.
type Strategy interface {
	// Name returns the strategy identifier
	Name() string

	// Match returns the candidate records the strategy finds
	Match(doc *Document) []types.UsageRecord
}

// Extractor runs the strategy list over invoice text
type Extractor struct {
	env        *env
	strategies []Strategy
	fallback   Strategy
}

// New creates an extractor with the standard strategy list
func New(calc *pricing.Calculator, cfg Config) *Extractor {
	if cfg.LookaheadChars <= 0 {
		cfg.LookaheadChars = DefaultConfig().LookaheadChars
	}
	if cfg.LookaheadLines <= 0 {
		cfg.LookaheadLines = DefaultConfig().LookaheadLines
	}
	if cfg.YQuantum <= 0 {
		cfg.YQuantum = DefaultConfig().YQuantum
	}
	if cfg.Region == "" {
		cfg.Region = DefaultConfig().Region
	}

	e := &env{cfg: cfg, calc: calc, services: defaultServiceTable()}
	return &Extractor{
		env: e,
		strategies: []Strategy{
			&taggedStrategy{env: e},
			&lineScanStrategy{env: e},
			&positionedStrategy{env: e},
		},
		fallback: &fallbackStrategy{env: e},
	}
}

// Extract converts raw invoice text into normalized usage records. It
// never panics on arbitrary input; the only error is a parse failure,
// returned when no strategy including the fallback finds a record.
func (e *Extractor) Extract(rawText string) ([]types.UsageRecord, error) {
	return e.run(newDocument(rawText, nil))
}

// ExtractPositioned is Extract with per-glyph position metadata, which
// additionally enables the position-grouped strategy.
func (e *Extractor) ExtractPositioned(rawText string, frags []types.PositionedFragment) ([]types.UsageRecord, error) {
	return e.run(newDocument(rawText, frags))
}

func (e *Extractor) run(doc *Document) ([]types.UsageRecord, error) {
	var candidates []types.UsageRecord
	for _, s := range e.strategies {
		recs := s.Match(doc)
		if len(recs) > 0 {
			logging.Debug("strategy matched",
				zap.String("strategy", s.Name()),
				zap.Int("records", len(recs)))
		}
		candidates = append(candidates, recs...)
	}

	if len(candidates) == 0 {
		candidates = e.fallback.Match(doc)
	}

	records := dedupe(candidates)
	if len(records) == 0 {
		return nil, errors.Parsing("no usage records could be extracted from invoice text")
	}
	return records, nil
}

// dedupe merges records rediscovered by independent strategies. The
// identity key is (SKU, cost); the first occurrence wins.
func dedupe(records []types.UsageRecord) []types.UsageRecord {
	type key struct {
		sku  string
		cost float64
	}
	seen := make(map[key]struct{}, len(records))
	out := make([]types.UsageRecord, 0, len(records))
	for _, r := range records {
		k := key{sku: r.SKUID, cost: r.Cost}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// env is the context shared by every strategy
type env struct {
	cfg      Config
	calc     *pricing.Calculator
	services *serviceTable
}

// record builds a normalized usage record for a matched line item.
// When the text stated no quantity, usage is estimated as cost divided
// by the SKU's baseline unit price and flagged as estimated.
func (e *env) record(entry *serviceEntry, cost, qty float64, unit string, hasQty bool) types.UsageRecord {
	sku := entry.skuFor(cost)

	u := entry.unit
	estimated := false
	if hasQty {
		if unit != "" {
			u = unit
		}
	} else {
		if base := e.calc.BaselineUnitPrice(sku); base > 0 {
			qty = cost / base
		} else {
			qty = 0
		}
		estimated = true
	}

	return types.UsageRecord{
		SKUID:         sku,
		ServiceCode:   entry.code,
		UsageQuantity: qty,
		Cost:          cost,
		Region:        e.cfg.Region,
		Unit:          u,
		Estimated:     estimated,
	}
}
