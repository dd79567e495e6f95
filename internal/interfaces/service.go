package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kitchenpos/internal/domain"
)

// Commands carried from transport into the services. Price fields are
// pointers so a missing value can be told apart from zero.

type CreateProductCommand struct {
	Name  string
	Price *decimal.Decimal
}

type CreateMenuGroupCommand struct {
	Name string
}

type MenuLineItemCommand struct {
	ProductID uuid.UUID
	Quantity  int64
}

type CreateMenuCommand struct {
	Name        string
	Price       *decimal.Decimal
	MenuGroupID uuid.UUID
	Displayed   bool
	LineItems   []MenuLineItemCommand
}

type OrderLineItemCommand struct {
	MenuID   uuid.UUID
	Quantity int64
}

type CreateOrderCommand struct {
	Type            string
	TableID         *uuid.UUID
	DeliveryAddress *string
	LineItems       []OrderLineItemCommand
}

type CreateOrderTableCommand struct {
	Name string
}

// CatalogService owns products, menu groups and menus, including the menu
// pricing invariant and its cascading correction.
type CatalogService interface {
	CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error)
	ChangeProductPrice(ctx context.Context, productID uuid.UUID, price *decimal.Decimal) (*domain.Product, error)
	FindAllProducts(ctx context.Context) ([]domain.Product, error)

	CreateMenuGroup(ctx context.Context, cmd CreateMenuGroupCommand) (*domain.MenuGroup, error)
	FindAllMenuGroups(ctx context.Context) ([]domain.MenuGroup, error)

	CreateMenu(ctx context.Context, cmd CreateMenuCommand) (*domain.Menu, error)
	ChangeMenuPrice(ctx context.Context, menuID uuid.UUID, price *decimal.Decimal) (*domain.Menu, error)
	DisplayMenu(ctx context.Context, menuID uuid.UUID) (*domain.Menu, error)
	HideMenu(ctx context.Context, menuID uuid.UUID) (*domain.Menu, error)
	FindAllMenus(ctx context.Context) ([]domain.Menu, error)
}

// OrderService drives the order lifecycle state machine.
type OrderService interface {
	Create(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
	Accept(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	Serve(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	StartDelivery(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	CompleteDelivery(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	Complete(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)

	CreateTable(ctx context.Context, cmd CreateOrderTableCommand) (*domain.OrderTable, error)
	FindAllTables(ctx context.Context) ([]domain.OrderTable, error)
}
