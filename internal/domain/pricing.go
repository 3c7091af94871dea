package domain

import "github.com/shopspring/decimal"

// Line is one cart line as seen by the pricing rules.
type Line struct {
	ProductID uint64
	Price     decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func LinesFromItems(items []OrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{ProductID: it.ProductID, Price: it.Price, Quantity: it.Quantity})
	}
	return lines
}

var DefaultVATRate = decimal.RequireFromString("0.07")

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Taxable  decimal.Decimal `json:"taxable"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
}

// NewQuote prices a cart. The discount is taken off the subtotal first and VAT
// is charged on what remains.
func NewQuote(lines []Line, d *Discount, vatRate decimal.Decimal) (Quote, error) {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	subtotal = RoundMoney(subtotal)

	discount := decimal.Zero
	if d != nil {
		amount, err := d.AmountFor(lines)
		if err != nil {
			return Quote{}, err
		}
		discount = amount
	}

	taxable := subtotal.Sub(discount)
	vat := RoundMoney(taxable.Mul(vatRate))

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		VAT:      vat,
		Total:    taxable.Add(vat),
	}, nil
}

// Discount is what a validated redeem code grants.
type Discount struct {
	CodeID    uint64          `json:"-"`
	Code      string          `json:"code"`
	Percent   decimal.Decimal `json:"discount_percent"`
	Amount    decimal.Decimal `json:"discount_amount"`
	ProductID *uint64         `json:"product_id,omitempty"`
}

// AmountFor returns the money taken off for the given lines. A percentage wins
// over a fixed amount, and a fixed amount never exceeds what it applies to.
func (d Discount) AmountFor(lines []Line) (decimal.Decimal, error) {
	eligible := decimal.Zero
	matched := false
	for _, l := range lines {
		if d.ProductID != nil && l.ProductID != *d.ProductID {
			continue
		}
		matched = true
		eligible = eligible.Add(l.Total())
	}
	if !matched {
		return decimal.Zero, &ValidationError{Field: "code", Err: ErrCodeNotApplicable}
	}

	if d.Percent.IsPositive() {
		return RoundMoney(eligible.Mul(d.Percent).Div(hundred)), nil
	}
	if d.Amount.GreaterThan(eligible) {
		return RoundMoney(eligible), nil
	}
	return RoundMoney(d.Amount), nil
}
