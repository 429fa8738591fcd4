package output

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatNaira formats an amount as naira with thousands grouping and two
// decimal places, e.g. ₦1,234,567.89.
func FormatNaira(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "₦" + whole + "." + frac
	}
	return sign + "₦" + humanize.Comma(n) + "." + frac
}

// FormatRate formats a fractional rate as a percentage, e.g. 0.07 as 7.00%
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// RegimeTitle returns the display name of a regime
func RegimeTitle(regime string) string {
	switch regime {
	case domain.RegimeOld:
		return "Old Regime (CRA)"
	case domain.RegimeNew:
		return "New Regime (Rent Relief)"
	case domain.RegimeEqual:
		return "Either (equal tax)"
	}
	return regime
}
