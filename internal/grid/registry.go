package grid

import (
	"flowwork/internal/model"

	"github.com/google/uuid"
)

// Registry is the ordered set of a board's columns.
type Registry struct {
	columns []model.Column
	byID    map[uuid.UUID]int
	byName  map[string]uuid.UUID
}

// NewRegistry keeps columns in the given order. When two columns share a name,
// the later one wins name lookups.
func NewRegistry(columns []model.Column) *Registry {
	r := &Registry{
		columns: columns,
		byID:    make(map[uuid.UUID]int, len(columns)),
		byName:  make(map[string]uuid.UUID, len(columns)),
	}
	for i, col := range columns {
		r.byID[col.ID] = i
		r.byName[col.Name] = col.ID
	}
	return r
}

func (r *Registry) Columns() []model.Column { return r.columns }

func (r *Registry) Column(id uuid.UUID) (model.Column, bool) {
	i, ok := r.byID[id]
	if !ok {
		return model.Column{}, false
	}
	return r.columns[i], true
}

func (r *Registry) IDByName(name string) (uuid.UUID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Formulas returns the formula columns in registry order.
func (r *Registry) Formulas() []model.Column {
	var out []model.Column
	for _, col := range r.columns {
		if col.Type == model.ColumnFormula {
			out = append(out, col)
		}
	}
	return out
}
