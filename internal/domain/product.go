package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductCode string          `json:"product_code" gorm:"type:varchar(64);uniqueIndex;not null"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Category    string          `json:"category" gorm:"type:varchar(100);index"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(512)"`
	FileURL     string          `json:"file_url,omitempty" gorm:"type:varchar(512)"`
	Stock       int             `json:"stock" gorm:"not null"`
	IsActive    bool            `json:"is_active" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Public strips the downloadable asset location, which is only handed out
// through the download endpoint.
func (p Product) Public() Product {
	p.FileURL = ""
	return p
}

func (p *Product) Normalize() {
	p.ProductCode = strings.ToUpper(strings.TrimSpace(p.ProductCode))
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
}

func (p *Product) Validate() error {
	switch {
	case p.ProductCode == "":
		return NewValidationError("product_code", "is required")
	case p.Name == "":
		return NewValidationError("name", "is required")
	case p.Price.IsNegative():
		return NewValidationError("price", "must not be negative")
	case p.Stock < 0:
		return NewValidationError("stock", "must not be negative")
	}
	return nil
}
