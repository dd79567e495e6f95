package domain

import "fmt"

type OrderType string

const (
	OrderTypeEatIn    OrderType = "EAT_IN"
	OrderTypeTakeout  OrderType = "TAKEOUT"
	OrderTypeDelivery OrderType = "DELIVERY"
)

// ParseOrderType validates a raw order type value coming in from transport.
func ParseOrderType(raw string) (OrderType, error) {
	switch t := OrderType(raw); t {
	case OrderTypeEatIn, OrderTypeTakeout, OrderTypeDelivery:
		return t, nil
	default:
		return "", fmt.Errorf("order type %q: %w", raw, ErrInvalidArgument)
	}
}

type OrderStatus string

const (
	OrderStatusWaiting    OrderStatus = "WAITING"
	OrderStatusAccepted   OrderStatus = "ACCEPTED"
	OrderStatusServed     OrderStatus = "SERVED"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
)
