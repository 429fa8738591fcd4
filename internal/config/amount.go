package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountReplacer = strings.NewReplacer(",", "", " ", "", "₦", "", " ", "")

// ParseAmountStrict parses a user-typed amount such as "₦1,200,000.50".
// Thousands separators, spaces and the naira sign are ignored; an empty
// string is zero.
func ParseAmountStrict(text string) (decimal.Decimal, error) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(text))
	cleaned = strings.TrimPrefix(strings.ToUpper(cleaned), "NGN")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", text)
	}
	return d, nil
}

// ParseAmount is the lenient form used for web forms: anything that does
// not parse becomes zero.
func ParseAmount(text string) decimal.Decimal {
	d, err := ParseAmountStrict(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}
