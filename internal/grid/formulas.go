package grid

import (
	"strconv"
	"strings"

	"flowwork/internal/formula"
	"flowwork/internal/model"

	"github.com/google/uuid"
)

// Cell is one computed formula value.
type Cell struct {
	ItemID   uuid.UUID
	ColumnID uuid.UUID
	Value    string
}

// RecomputeResult reports what RecomputeFormulas wrote.
type RecomputeResult struct {
	Cells     []Cell
	Evaluated int
	// Fallbacks counts evaluations that failed and were stored as zero.
	Fallbacks int
}

// RecomputeFormulas evaluates every formula column for every item and writes
// the results back into values, overwriting what was there.
//
// Formula columns are processed in registry order, so a formula may read the
// freshly computed value of a formula column to its left. Any failure
// (disallowed characters, unknown column names, division by zero) stores
// zero at the column's precision; callers never see an error.
func RecomputeFormulas(reg *Registry, itemIDs []uuid.UUID, values Values) RecomputeResult {
	var res RecomputeResult
	for _, col := range reg.Formulas() {
		cfg := col.Settings()
		precision := cfg.PrecisionOrDefault()
		prog, compileErr := formula.Compile(cfg.Formula)

		for _, itemID := range itemIDs {
			res.Evaluated++

			v := 0.0
			if compileErr != nil {
				res.Fallbacks++
			} else {
				out, err := prog.Eval(itemEnv(reg, values, itemID))
				if err != nil {
					res.Fallbacks++
				} else {
					v = out
				}
			}

			formatted := FormatFixed(v, precision)
			values.Set(itemID, col.ID, formatted)
			res.Cells = append(res.Cells, Cell{ItemID: itemID, ColumnID: col.ID, Value: formatted})
		}
	}
	return res
}

// EvaluateFormula evaluates a single expression for one item without touching
// values. It is the same computation RecomputeFormulas performs per cell.
func EvaluateFormula(reg *Registry, values Values, itemID uuid.UUID, cfg model.ColumnConfig) string {
	v, err := formula.Evaluate(cfg.Formula, itemEnv(reg, values, itemID))
	if err != nil {
		v = 0
	}
	return FormatFixed(v, cfg.PrecisionOrDefault())
}

// itemEnv binds placeholder names to the item's numeric values. Names that
// match no column stay unresolved; known columns without a numeric value
// resolve to zero. A value whose 14 significant digit rendering needs an
// exponent (1e-7, 1e20) fails the evaluation, as its letters would fail the
// character whitelist.
func itemEnv(reg *Registry, values Values, itemID uuid.UUID) formula.Env {
	return func(name string) (float64, bool) {
		colID, ok := reg.IDByName(name)
		if !ok {
			return 0, false
		}
		raw, present := values.Get(itemID, colID)
		if !present {
			return 0, true
		}
		v := NumberOrZero(raw)
		if needsExponent(v) {
			return 0, false
		}
		return v, true
	}
}

func needsExponent(v float64) bool {
	return strings.ContainsRune(strconv.FormatFloat(v, 'g', 14, 64), 'e')
}
