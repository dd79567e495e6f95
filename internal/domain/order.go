package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem references a menu with the menu price snapshotted at order
// creation time. Later menu price changes do not touch the snapshot.
type OrderLineItem struct {
	MenuID   uuid.UUID       `json:"menu_id"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// OrderTable is a physical table for eat-in orders. Only the occupancy flag
// and guest count are mutable; seating management beyond that is out of scope.
type OrderTable struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NumberOfGuests int       `json:"number_of_guests"`
	Occupied       bool      `json:"occupied"`
}

// Order is created once and then only advances its status through the
// per-type transition table. It is never deleted.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	Type            OrderType       `json:"type"`
	Status          OrderStatus     `json:"status"`
	OrderedAt       time.Time       `json:"ordered_at"`
	LineItems       []OrderLineItem `json:"line_items"`
	TableID         *uuid.UUID      `json:"table_id,omitempty"`
	DeliveryAddress *string         `json:"delivery_address,omitempty"`
}

// MenuIDs returns the referenced menu identifiers in line-item order.
func (o *Order) MenuIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		ids = append(ids, li.MenuID)
	}
	return ids
}
