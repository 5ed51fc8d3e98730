package parsers

import (
	// Go Internal Packages
	"math"
	"regexp"
	"strings"

	// External Packages
	"github.com/shopspring/decimal"
)

// ParseAmount converts a ledger amount into a decimal. Strings are read with '.' as
// the thousands separator and ',' as the decimal point ("1.574,00" is 1574.00),
// regardless of the host locale. Native numbers are taken as they are.
// Anything that does not parse yields a null value, never an error.
func ParseAmount(v any) decimal.NullDecimal {
	switch n := v.(type) {
	case string:
		return parseLocaleAmount(n)
	case decimal.Decimal:
		return decimal.NewNullDecimal(n)
	case float64:
		return fromFloat(n)
	case float32:
		return fromFloat(float64(n))
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(n)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(n))
	}
	return decimal.NullDecimal{}
}

// plainNumber is an optionally signed dot-decimal without exponent. Ledger exports
// never carry exponents, and one like 1e999999999 cannot be summed in bounded memory.
var plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

func parsePlain(s string) (decimal.Decimal, bool) {
	if !plainNumber.MatchString(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseLocaleAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, ok := parsePlain(s)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func fromFloat(f float64) decimal.NullDecimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}
