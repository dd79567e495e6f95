package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kitchenpos/internal/domain"
)

// MenuHiddenMessage is published when the cascading correction forces a menu
// out of the visible set.
type MenuHiddenMessage struct {
	MenuID    uuid.UUID `json:"menu_id"`
	MenuName  string    `json:"menu_name"`
	ProductID uuid.UUID `json:"product_id"`
	MenuPrice string    `json:"menu_price"`
	Total     string    `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderStatusMessage is published on every order status transition, including
// creation (OldStatus empty).
type OrderStatusMessage struct {
	OrderID   uuid.UUID          `json:"order_id"`
	OrderType domain.OrderType   `json:"order_type"`
	OldStatus domain.OrderStatus `json:"old_status,omitempty"`
	NewStatus domain.OrderStatus `json:"new_status"`
	Timestamp time.Time          `json:"timestamp"`
}

type EventPublisher interface {
	PublishMenuHidden(ctx context.Context, msg MenuHiddenMessage) error
	PublishOrderStatus(ctx context.Context, msg OrderStatusMessage) error
}
