// Package format renders amounts the way the storefront displays them.
package format

import (
	"math"

	"flower-storefront/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale used for every amount shown to shoppers.
var Locale = language.MustParse("zh-TW")

// TaxRate is applied to final_total on the checkout summary only; the backend
// never sees it.
var TaxRate = decimal.RequireFromString("1.05")

var printer = message.NewPrinter(Locale)

// Currency formats v with thousands separators and at most three fraction
// digits. Values that are not finite numbers format as "0".
func Currency(v any) string {
	d, ok := model.Number(v)
	if !ok {
		return "0"
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "0"
	}
	return printer.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(3)))
}

// WithTax returns the tax and shipping inclusive total shown at checkout.
func WithTax(finalTotal decimal.Decimal) decimal.Decimal {
	return finalTotal.Mul(TaxRate)
}
