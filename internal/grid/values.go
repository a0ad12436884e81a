// Package grid computes the derived parts of a board grid: formula column
// values and per-group / per-board aggregates.
//
// Everything here is pure and in-memory. Callers load columns, items and the
// value map, hand them to the grid and persist whatever they need afterwards.
package grid

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Values is the sparse cell map item_id -> column_id -> raw value.
type Values map[uuid.UUID]map[uuid.UUID]string

// Get returns the raw value of a cell and whether it is present.
func (v Values) Get(itemID, columnID uuid.UUID) (string, bool) {
	row, ok := v[itemID]
	if !ok {
		return "", false
	}
	val, ok := row[columnID]
	return val, ok
}

// Set stores a raw value, creating the item row if needed.
func (v Values) Set(itemID, columnID uuid.UUID, value string) {
	row, ok := v[itemID]
	if !ok {
		row = make(map[uuid.UUID]string)
		v[itemID] = row
	}
	row[columnID] = value
}

// Clone returns a deep copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for itemID, row := range v {
		cp := make(map[uuid.UUID]string, len(row))
		for colID, val := range row {
			cp[colID] = val
		}
		out[itemID] = cp
	}
	return out
}

var numericPattern = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// ParseNumeric reports whether raw is a plain decimal number (optionally signed,
// with an optional exponent and surrounding whitespace) and returns its value.
// Hex, infinities, NaN and out-of-range values are not numeric.
func ParseNumeric(raw string) (float64, bool) {
	if !numericPattern.MatchString(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumberOrZero coerces a raw cell to a float, defaulting to zero.
func NumberOrZero(raw string) float64 {
	f, _ := ParseNumeric(raw)
	return f
}
