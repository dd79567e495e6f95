package interfaces

import (
	"context"

	"github.com/google/uuid"

	"kitchenpos/internal/domain"
)

// Repositories are simple keyed stores. FindByID wraps domain.ErrNotFound when
// the identifier is absent; batch lookups return only the entities that exist.

type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type MenuGroupRepository interface {
	Save(ctx context.Context, group *domain.MenuGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MenuGroup, error)
	FindAll(ctx context.Context) ([]domain.MenuGroup, error)
}

type MenuRepository interface {
	Save(ctx context.Context, menu *domain.Menu) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Menu, error)
	// FindAllByProductID is the reverse-reference scan used by the cascading
	// correction after a product price change.
	FindAllByProductID(ctx context.Context, productID uuid.UUID) ([]domain.Menu, error)
	FindAll(ctx context.Context) ([]domain.Menu, error)
}

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// ExistsActiveByTableID reports whether any non-completed order still
	// references the table.
	ExistsActiveByTableID(ctx context.Context, tableID uuid.UUID) (bool, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
}

type OrderTableRepository interface {
	Save(ctx context.Context, table *domain.OrderTable) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderTable, error)
	FindAll(ctx context.Context) ([]domain.OrderTable, error)
}
