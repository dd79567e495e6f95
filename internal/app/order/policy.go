package order

import (
	"fmt"

	"kitchenpos/internal/domain"
)

// Action is a lifecycle operation on an order.
type Action string

const (
	ActionAccept           Action = "accept"
	ActionServe            Action = "serve"
	ActionStartDelivery    Action = "start-delivery"
	ActionCompleteDelivery Action = "complete-delivery"
	ActionComplete         Action = "complete"
)

type transition struct {
	from domain.OrderStatus
	to   domain.OrderStatus
}

// Policy holds the per-type rules: required fields, whether the table
// occupancy side effects apply, and the legal transition per action. Actions
// absent from the table are illegal for the type.
type Policy struct {
	Type            domain.OrderType
	RequiresTable   bool
	RequiresAddress bool
	transitions     map[Action]transition
}

var directTransitions = map[Action]transition{
	ActionAccept:   {from: domain.OrderStatusWaiting, to: domain.OrderStatusAccepted},
	ActionServe:    {from: domain.OrderStatusAccepted, to: domain.OrderStatusServed},
	ActionComplete: {from: domain.OrderStatusServed, to: domain.OrderStatusCompleted},
}

var deliveryTransitions = map[Action]transition{
	ActionAccept:           {from: domain.OrderStatusWaiting, to: domain.OrderStatusAccepted},
	ActionServe:            {from: domain.OrderStatusAccepted, to: domain.OrderStatusServed},
	ActionStartDelivery:    {from: domain.OrderStatusServed, to: domain.OrderStatusDelivering},
	ActionCompleteDelivery: {from: domain.OrderStatusDelivering, to: domain.OrderStatusDelivered},
	ActionComplete:         {from: domain.OrderStatusDelivered, to: domain.OrderStatusCompleted},
}

var policies = map[domain.OrderType]Policy{
	domain.OrderTypeEatIn: {
		Type:          domain.OrderTypeEatIn,
		RequiresTable: true,
		transitions:   directTransitions,
	},
	domain.OrderTypeTakeout: {
		Type:        domain.OrderTypeTakeout,
		transitions: directTransitions,
	},
	domain.OrderTypeDelivery: {
		Type:            domain.OrderTypeDelivery,
		RequiresAddress: true,
		transitions:     deliveryTransitions,
	},
}

// PolicyFor returns the rules for the given order type.
func PolicyFor(orderType domain.OrderType) (Policy, error) {
	policy, ok := policies[orderType]
	if !ok {
		return Policy{}, fmt.Errorf("order type %q: %w", orderType, domain.ErrInvalidArgument)
	}
	return policy, nil
}

// Next returns the status the order moves to when the action is applied from
// the current status. It fails with domain.ErrIllegalState when the action is
// not defined for the order type or the current status does not match;
// repeated application of an already-applied action therefore fails rather
// than no-ops.
func (p Policy) Next(action Action, current domain.OrderStatus) (domain.OrderStatus, error) {
	t, ok := p.transitions[action]
	if !ok {
		return "", fmt.Errorf("%s is not allowed for %s orders: %w", action, p.Type, domain.ErrIllegalState)
	}
	if current != t.from {
		return "", fmt.Errorf("cannot %s a %s order: %w", action, current, domain.ErrIllegalState)
	}
	return t.to, nil
}
