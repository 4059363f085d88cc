// Package extract - Position-grouped strategy
package extract

import (
	"math"
	"sort"
	"strings"

	"cloudpool/core/types"
)

// positionedStrategy reconstructs pseudo-lines from per-glyph position
// metadata: fragments are grouped by page and quantized vertical
// position, ordered top to bottom and left to right, then fed through
// the same service/cost line matching as the line-scan strategy. It
// only applies when the collaborator supplied fragments.
type positionedStrategy struct {
	env *env
}

func (s *positionedStrategy) Name() string { return "position-grouped" }

func (s *positionedStrategy) Match(doc *Document) []types.UsageRecord {
	if len(doc.Fragments) == 0 {
		return nil
	}
	lines := groupFragments(doc.Fragments, s.env.cfg.YQuantum)
	return s.env.scanLines(lines)
}

// groupFragments joins fragments sharing a page and quantized Y into
// one pseudo-line, preserving document order.
func groupFragments(frags []types.PositionedFragment, quantum float64) []string {
	type rowKey struct {
		page int
		row  int64
	}

	sorted := append([]types.PositionedFragment(nil), frags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.PageIndex != b.PageIndex {
			return a.PageIndex < b.PageIndex
		}
		ra, rb := quantizeY(a.Y, quantum), quantizeY(b.Y, quantum)
		if ra != rb {
			return ra < rb
		}
		return a.X < b.X
	})

	var lines []string
	var cur strings.Builder
	var curKey rowKey
	for i, f := range sorted {
		k := rowKey{page: f.PageIndex, row: quantizeY(f.Y, quantum)}
		if i > 0 && k != curKey {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(strings.TrimSpace(f.Text))
		curKey = k
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func quantizeY(y, quantum float64) int64 {
	return int64(math.Round(y / quantum))
}
