package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kitchenpos/internal/adapter/logger"
	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

// Service drives the order lifecycle state machine. Transition legality lives
// in the per-type Policy; the service applies side effects (price snapshots,
// table occupancy) and persists the result.
type Service struct {
	orders    interfaces.OrderRepository
	menus     interfaces.MenuRepository
	tables    interfaces.OrderTableRepository
	publisher interfaces.EventPublisher
	logger    logger.Logger
}

func NewService(
	orders interfaces.OrderRepository,
	menus interfaces.MenuRepository,
	tables interfaces.OrderTableRepository,
	publisher interfaces.EventPublisher,
	lgr logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		menus:     menus,
		tables:    tables,
		publisher: publisher,
		logger:    lgr,
	}
}

var _ interfaces.OrderService = (*Service)(nil)

// Create registers a new order in WAITING status. Every referenced menu must
// exist and be displayed; the menu's current price is snapshotted into the
// line item and stays fixed for the life of the order. Eat-in orders occupy
// their table; delivery orders need a non-empty address.
func (s *Service) Create(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	orderType, err := domain.ParseOrderType(cmd.Type)
	if err != nil {
		return nil, err
	}
	policy, err := PolicyFor(orderType)
	if err != nil {
		return nil, err
	}

	if len(cmd.LineItems) == 0 {
		return nil, fmt.Errorf("order must contain at least one line item: %w", domain.ErrInvalidLineItems)
	}
	for _, item := range cmd.LineItems {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for menu %s must be positive: %w", item.MenuID, domain.ErrInvalidArgument)
		}
	}

	if policy.RequiresAddress {
		if cmd.DeliveryAddress == nil || strings.TrimSpace(*cmd.DeliveryAddress) == "" {
			return nil, fmt.Errorf("delivery address is required for delivery orders: %w", domain.ErrInvalidArgument)
		}
	}

	menuIDs := make([]uuid.UUID, len(cmd.LineItems))
	for i, item := range cmd.LineItems {
		menuIDs[i] = item.MenuID
	}
	menus, err := s.menus.FindAllByIDs(ctx, menuIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve menus: %w", err)
	}
	menusByID := make(map[uuid.UUID]domain.Menu, len(menus))
	for _, m := range menus {
		menusByID[m.ID] = m
	}

	lineItems := make([]domain.OrderLineItem, len(cmd.LineItems))
	for i, item := range cmd.LineItems {
		menu, ok := menusByID[item.MenuID]
		if !ok {
			return nil, fmt.Errorf("menu %s: %w", item.MenuID, domain.ErrNotFound)
		}
		if !menu.Displayed {
			return nil, fmt.Errorf("menu %s is not displayed: %w", item.MenuID, domain.ErrIllegalState)
		}
		lineItems[i] = domain.OrderLineItem{
			MenuID:   item.MenuID,
			Price:    menu.Price,
			Quantity: item.Quantity,
		}
	}

	order := &domain.Order{
		ID:        uuid.New(),
		Type:      orderType,
		Status:    domain.OrderStatusWaiting,
		OrderedAt: time.Now().UTC(),
		LineItems: lineItems,
	}

	switch orderType {
	case domain.OrderTypeEatIn:
		if cmd.TableID == nil {
			return nil, fmt.Errorf("table is required for eat-in orders: %w", domain.ErrInvalidArgument)
		}
		table, err := s.tables.FindByID(ctx, *cmd.TableID)
		if err != nil {
			return nil, err
		}
		table.Occupied = true
		if err := s.tables.Save(ctx, table); err != nil {
			return nil, fmt.Errorf("failed to occupy table: %w", err)
		}
		order.TableID = &table.ID
	case domain.OrderTypeDelivery:
		order.DeliveryAddress = cmd.DeliveryAddress
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Debug("order_created", "Order created", map[string]interface{}{
		"order_id": order.ID.String(),
		"type":     string(order.Type),
	})
	s.publishStatus(ctx, order, "")
	return order, nil
}

func (s *Service) Accept(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, orderID, ActionAccept)
}

func (s *Service) Serve(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, orderID, ActionServe)
}

func (s *Service) StartDelivery(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, orderID, ActionStartDelivery)
}

func (s *Service) CompleteDelivery(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, orderID, ActionCompleteDelivery)
}

// Complete finishes the order. For eat-in orders the table is released unless
// another active order still references it.
func (s *Service) Complete(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.transition(ctx, orderID, ActionComplete)
	if err != nil {
		return nil, err
	}

	if order.Type == domain.OrderTypeEatIn && order.TableID != nil {
		if err := s.releaseTable(ctx, *order.TableID); err != nil {
			return order, fmt.Errorf("failed to release table: %w", err)
		}
	}
	return order, nil
}

func (s *Service) FindByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *Service) FindAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *Service) CreateTable(ctx context.Context, cmd interfaces.CreateOrderTableCommand) (*domain.OrderTable, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("table name must not be empty: %w", domain.ErrInvalidArgument)
	}

	table := &domain.OrderTable{
		ID:   uuid.New(),
		Name: cmd.Name,
	}
	if err := s.tables.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to save table: %w", err)
	}
	return table, nil
}

func (s *Service) FindAllTables(ctx context.Context) ([]domain.OrderTable, error) {
	return s.tables.FindAll(ctx)
}

func (s *Service) transition(ctx context.Context, orderID uuid.UUID, action Action) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	policy, err := PolicyFor(order.Type)
	if err != nil {
		return nil, err
	}
	next, err := policy.Next(action, order.Status)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = next
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Debug("order_status_changed", "Order status changed", map[string]interface{}{
		"order_id": order.ID.String(),
		"from":     string(previous),
		"to":       string(next),
	})
	s.publishStatus(ctx, order, previous)
	return order, nil
}

func (s *Service) releaseTable(ctx context.Context, tableID uuid.UUID) error {
	active, err := s.orders.ExistsActiveByTableID(ctx, tableID)
	if err != nil {
		return err
	}
	if active {
		return nil
	}

	table, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return err
	}
	table.Occupied = false
	table.NumberOfGuests = 0
	return s.tables.Save(ctx, table)
}

func (s *Service) publishStatus(ctx context.Context, order *domain.Order, old domain.OrderStatus) {
	if s.publisher == nil {
		return
	}
	msg := interfaces.OrderStatusMessage{
		OrderID:   order.ID,
		OrderType: order.Type,
		OldStatus: old,
		NewStatus: order.Status,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderStatus(ctx, msg); err != nil {
		s.logger.Error("publish_failed", "Failed to publish order status", map[string]interface{}{
			"order_id": order.ID.String(),
		}, err)
	}
}
