package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a single purchasable ingredient of a menu. The ID is assigned
// once at creation and never changes; the price is mutated only through the
// catalog price-change operation.
type Product struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
