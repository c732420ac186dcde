package dto

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders a major-unit amount with the currency's own grapheme and
// separators, e.g. "R$5.225,00" for BRL.
func FormatMoney(amount float64, currency string) string {
	// money.New never returns a nil currency, unlike money.GetCurrency.
	cur := money.New(0, currency).Currency()
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatRate renders a surcharge percentage or a discount fraction as a
// percentage with a decimal comma.
func FormatRate(rate float64, fraction bool) string {
	if fraction {
		rate *= 100
	}
	return strings.ReplaceAll(fmt.Sprintf("%.2f%%", rate), ".", ",")
}
