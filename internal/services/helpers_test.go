package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

var testLogger = zerolog.Nop()

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, ProductCode: "EBOOK-1", Name: "Go in Practice", Price: dec("100"), Stock: 10, IsActive: true},
		{ID: 2, ProductCode: "EBOOK-2", Name: "Concurrency Notes", Price: dec("50"), Stock: 5, IsActive: true},
	}
}

func testCode(code string) *domain.RedeemCode {
	return &domain.RedeemCode{
		ID:              11,
		Code:            code,
		DiscountPercent: dec("10"),
		DiscountAmount:  decimal.Zero,
		MaxUses:         5,
		UsedCount:       1,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
}

func testCart() []CartItem {
	return []CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
}

func createMockOrder(id uint64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            id,
		CustomerName:  "Ann Lee",
		CustomerEmail: "ann@example.com",
		Subtotal:      dec("250"),
		VATAmount:     dec("17.5"),
		Total:         dec("267.5"),
		Status:        status,
		PaymentMethod: domain.MethodWise,
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "Go in Practice", Quantity: 2, Price: dec("100")},
			{ProductID: 2, ProductName: "Concurrency Notes", Quantity: 1, Price: dec("50")},
		},
		CreatedAt: time.Now(),
	}
}
