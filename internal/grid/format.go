package grid

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatFixed renders v rounded half away from zero to precision places,
// never in scientific notation.
func FormatFixed(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if precision < 0 {
		precision = 0
	}
	return decimal.NewFromFloat(v).StringFixed(int32(precision))
}

// FormatGrouped is FormatFixed with comma thousands separators.
func FormatGrouped(v float64, precision int) string {
	s := FormatFixed(v, precision)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
