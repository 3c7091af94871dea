package domain

import "github.com/shopspring/decimal"

func init() {
	// totals go over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
