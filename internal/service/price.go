package service

import (
	"strings"

	"menu-app/internal/model"

	"github.com/shopspring/decimal"
)

// maxPriceExponent bounds the decimal exponent accepted from input so that
// values like "1e999999999" are rejected before any arithmetic is done.
const maxPriceExponent = 20

// ParsePrice parses a positive price with at most two significant fraction
// digits. "9.990" is accepted, "9.999" is not.
func ParsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, model.ErrInvalidPrice
	}

	if exp := d.Exponent(); exp > maxPriceExponent || exp < -maxPriceExponent {
		return decimal.Zero, model.ErrInvalidPrice
	}

	if !d.IsPositive() {
		return decimal.Zero, model.ErrInvalidPrice
	}

	if !d.Equal(d.Round(2)) {
		return decimal.Zero, model.ErrInvalidPrice
	}

	return d, nil
}

// FormatPrice renders a price with exactly two fraction digits.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// isCanonicalPrice reports whether raw is already in stored form, e.g. "5.50".
func isCanonicalPrice(raw string) bool {
	d, err := ParsePrice(raw)
	if err != nil {
		return false
	}
	return FormatPrice(d) == raw
}
