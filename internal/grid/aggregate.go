package grid

import (
	"math"

	"flowwork/internal/model"

	"github.com/google/uuid"
)

// Collect gathers the numeric values a column holds across items. Absent and
// non-numeric cells are skipped rather than counted as zero.
func Collect(columnID uuid.UUID, itemIDs []uuid.UUID, values Values) []float64 {
	out := make([]float64, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		raw, ok := values.Get(itemID, columnID)
		if !ok {
			continue
		}
		if f, ok := ParseNumeric(raw); ok {
			out = append(out, f)
		}
	}
	return out
}

// Reduce applies an aggregation method. Empty input reduces to zero for every
// method.
func Reduce(method model.Aggregation, nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	switch method {
	case model.AggCount:
		return float64(len(nums))
	case model.AggAvg:
		return sum(nums) / float64(len(nums))
	case model.AggMin:
		m := math.Inf(1)
		for _, n := range nums {
			m = math.Min(m, n)
		}
		return m
	case model.AggMax:
		m := math.Inf(-1)
		for _, n := range nums {
			m = math.Max(m, n)
		}
		return m
	default:
		return sum(nums)
	}
}

func sum(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}

// Aggregate reduces one column over itemIDs and formats the result for display.
// ok is false for columns that have no aggregate (anything not number or
// formula); callers render an empty placeholder for those.
func Aggregate(col model.Column, itemIDs []uuid.UUID, values Values) (display string, ok bool) {
	if !col.Type.Numeric() {
		return "", false
	}
	cfg := col.Settings()
	v := Reduce(cfg.AggregationOrDefault(), Collect(col.ID, itemIDs, values))
	return FormatGrouped(v, cfg.PrecisionOrDefault()), true
}

// Summary holds display aggregates keyed by column id.
type Summary struct {
	Groups map[uuid.UUID]map[uuid.UUID]string
	Board  map[uuid.UUID]string
}

// Summarize aggregates every numeric column once per group and once over the
// whole board. Empty groups still get (zero) aggregates. The board totals are
// computed from the items directly, not from the group results.
func Summarize(reg *Registry, groups []model.Group, items []model.Item, values Values) Summary {
	byGroup := make(map[uuid.UUID][]uuid.UUID, len(groups))
	for _, g := range groups {
		byGroup[g.ID] = nil
	}
	all := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		byGroup[it.GroupID] = append(byGroup[it.GroupID], it.ID)
		all = append(all, it.ID)
	}

	s := Summary{
		Groups: make(map[uuid.UUID]map[uuid.UUID]string, len(byGroup)),
		Board:  make(map[uuid.UUID]string),
	}
	for groupID, ids := range byGroup {
		row := make(map[uuid.UUID]string)
		for _, col := range reg.Columns() {
			if display, ok := Aggregate(col, ids, values); ok {
				row[col.ID] = display
			}
		}
		s.Groups[groupID] = row
	}
	for _, col := range reg.Columns() {
		if display, ok := Aggregate(col, all, values); ok {
			s.Board[col.ID] = display
		}
	}
	return s
}

// ItemIDs extracts ids in order.
func ItemIDs(items []model.Item) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
