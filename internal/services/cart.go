package services

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// MaxLineQuantity bounds the quantity of one product in an order, after
// repeated lines are merged.
const MaxLineQuantity = 10000

type CartItem struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=10000"`
}

// snapshotItems resolves cart lines against the catalog and freezes each
// product's name and current price into an order item. Repeated products are
// merged into one line.
func snapshotItems(ctx context.Context, products repository.ProductRepository, cart []CartItem) ([]domain.OrderItem, error) {
	if len(cart) == 0 {
		return nil, domain.NewValidationError("items", "at least one item is required")
	}

	qty := make(map[uint64]int, len(cart))
	order := make([]uint64, 0, len(cart))
	for _, c := range cart {
		if c.ProductID == 0 {
			return nil, domain.NewValidationError("items", "product_id is required")
		}
		if c.Quantity <= 0 {
			return nil, domain.NewValidationError("items", "quantity must be greater than zero")
		}
		if c.Quantity > MaxLineQuantity-qty[c.ProductID] {
			return nil, domain.NewValidationError("items", fmt.Sprintf("quantity of product %d must not exceed %d", c.ProductID, MaxLineQuantity))
		}
		if _, seen := qty[c.ProductID]; !seen {
			order = append(order, c.ProductID)
		}
		qty[c.ProductID] += c.Quantity
	}

	found, err := products.FindByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(order))
	for _, id := range order {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return nil, domain.NewValidationError("items", fmt.Sprintf("product %d is not available", id))
		}
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			ProductCode: p.ProductCode,
			Quantity:    qty[id],
			Price:       p.Price,
		})
	}
	return items, nil
}
