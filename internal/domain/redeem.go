package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RedeemCode struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Code            string          `json:"code" gorm:"type:varchar(64);uniqueIndex;not null"`
	ProductID       *uint64         `json:"product_id,omitempty" gorm:"index"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:decimal(5,2);not null"`
	DiscountAmount  decimal.Decimal `json:"discount_amount" gorm:"type:decimal(12,2);not null"`
	MaxUses         int             `json:"max_uses" gorm:"not null"`
	UsedCount       int             `json:"used_count" gorm:"not null"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	IsActive        bool            `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Check tells whether the code can still be redeemed at now. Expiry is only
// ever evaluated here, nothing sweeps expired codes.
func (c *RedeemCode) Check(now time.Time) error {
	switch {
	case !c.IsActive:
		return &ValidationError{Field: "code", Err: ErrCodeInactive}
	case c.ExpiresAt != nil && c.ExpiresAt.Before(now):
		return &ValidationError{Field: "code", Err: ErrCodeExpired}
	case c.UsedCount >= c.MaxUses:
		return &ValidationError{Field: "code", Err: ErrCodeExhausted}
	}
	return nil
}

func (c *RedeemCode) Discount() Discount {
	d := Discount{CodeID: c.ID, Code: c.Code, ProductID: c.ProductID}
	if c.DiscountPercent.IsPositive() {
		d.Percent = c.DiscountPercent
		d.Amount = decimal.Zero
	} else {
		d.Percent = decimal.Zero
		d.Amount = c.DiscountAmount
	}
	return d
}

// ValidateTerms checks the discount terms of a code before it is issued.
func (c *RedeemCode) ValidateTerms() error {
	switch {
	case c.DiscountPercent.IsNegative() || c.DiscountPercent.GreaterThan(hundred):
		return NewValidationError("discount_percent", "must be between 0 and 100")
	case c.DiscountAmount.IsNegative():
		return NewValidationError("discount_amount", "must not be negative")
	case !c.DiscountPercent.IsPositive() && !c.DiscountAmount.IsPositive():
		return NewValidationError("discount_percent", "either a percent or an amount is required")
	case c.MaxUses < 1:
		return NewValidationError("max_uses", "must be at least 1")
	}
	return nil
}
