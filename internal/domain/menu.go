package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuGroup is a named section of the catalog. Immutable after creation.
type MenuGroup struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MenuProduct links a menu to a product with a quantity. It has no lifecycle
// of its own; it lives and dies with its menu.
type MenuProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// Menu is a priced, composable bundle of products. While Displayed is true the
// menu price may never exceed the sum of its products' current prices times
// quantities; a hidden menu is allowed to violate that temporarily.
type Menu struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	MenuGroupID  uuid.UUID       `json:"menu_group_id"`
	MenuProducts []MenuProduct   `json:"menu_products"`
	Displayed    bool            `json:"displayed"`
}

// ProductIDs returns the referenced product identifiers in line-item order.
func (m *Menu) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m.MenuProducts))
	for _, mp := range m.MenuProducts {
		ids = append(ids, mp.ProductID)
	}
	return ids
}
