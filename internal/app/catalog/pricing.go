package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kitchenpos/internal/domain"
)

// ValidateMenuPricing checks the menu pricing invariant against the given
// product snapshot: the declared price may not exceed the sum of product price
// times quantity over all line items. Equality passes. The function is pure;
// it is safe to call repeatedly and concurrently.
func ValidateMenuPricing(price *decimal.Decimal, lineItems []domain.MenuProduct, products map[uuid.UUID]domain.Product) error {
	if price == nil || price.IsNegative() {
		return fmt.Errorf("menu price must be a non-negative amount: %w", domain.ErrInvalidArgument)
	}
	if len(lineItems) == 0 {
		return fmt.Errorf("menu must contain at least one line item: %w", domain.ErrInvalidLineItems)
	}

	total := decimal.Zero
	for _, item := range lineItems {
		product, ok := products[item.ProductID]
		if !ok {
			return fmt.Errorf("product %s: %w", item.ProductID, domain.ErrNotFound)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("quantity for product %s must not be negative: %w", item.ProductID, domain.ErrInvalidArgument)
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	if price.GreaterThan(total) {
		return fmt.Errorf("menu price %s exceeds product total %s: %w", price, total, domain.ErrAmountExceeded)
	}
	return nil
}

// productsByID indexes a batch lookup result for invariant checks.
func productsByID(products []domain.Product) map[uuid.UUID]domain.Product {
	byID := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}
