package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenpos/internal/domain"
)

func TestProductStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find", func(t *testing.T) {
		store := NewProductStore()
		product := &domain.Product{ID: uuid.New(), Name: "Fried Chicken", Price: decimal.NewFromInt(11000)}
		require.NoError(t, store.Save(ctx, product))

		found, err := store.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.Name, found.Name)
	})

	t.Run("missing id fails with not found", func(t *testing.T) {
		store := NewProductStore()
		_, err := store.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("find all by ids skips unknown and dedupes", func(t *testing.T) {
		store := NewProductStore()
		product := &domain.Product{ID: uuid.New(), Name: "Fried Chicken", Price: decimal.NewFromInt(11000)}
		require.NoError(t, store.Save(ctx, product))

		products, err := store.FindAllByIDs(ctx, []uuid.UUID{product.ID, product.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})
}

func TestMenuStore(t *testing.T) {
	ctx := context.Background()

	newMenu := func(productID uuid.UUID) *domain.Menu {
		return &domain.Menu{
			ID:    uuid.New(),
			Name:  "Solo",
			Price: decimal.NewFromInt(11000),
			MenuProducts: []domain.MenuProduct{
				{ProductID: productID, Quantity: 1},
			},
			Displayed: true,
		}
	}

	t.Run("find all by product id matches line items", func(t *testing.T) {
		store := NewMenuStore()
		productID := uuid.New()
		menu := newMenu(productID)
		other := newMenu(uuid.New())
		require.NoError(t, store.Save(ctx, menu))
		require.NoError(t, store.Save(ctx, other))

		menus, err := store.FindAllByProductID(ctx, productID)
		require.NoError(t, err)
		require.Len(t, menus, 1)
		assert.Equal(t, menu.ID, menus[0].ID)
	})

	t.Run("returned menus do not alias stored state", func(t *testing.T) {
		store := NewMenuStore()
		productID := uuid.New()
		menu := newMenu(productID)
		require.NoError(t, store.Save(ctx, menu))

		found, err := store.FindByID(ctx, menu.ID)
		require.NoError(t, err)
		found.MenuProducts[0].Quantity = 99
		found.Displayed = false

		again, err := store.FindByID(ctx, menu.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, again.MenuProducts[0].Quantity)
		assert.True(t, again.Displayed)
	})
}

func TestOrderStore(t *testing.T) {
	ctx := context.Background()

	newOrder := func(tableID *uuid.UUID, status domain.OrderStatus) *domain.Order {
		return &domain.Order{
			ID:      uuid.New(),
			Type:    domain.OrderTypeEatIn,
			Status:  status,
			TableID: tableID,
			LineItems: []domain.OrderLineItem{
				{MenuID: uuid.New(), Price: decimal.NewFromInt(23000), Quantity: 1},
			},
		}
	}

	t.Run("active order on a table is reported", func(t *testing.T) {
		store := NewOrderStore()
		tableID := uuid.New()
		require.NoError(t, store.Save(ctx, newOrder(&tableID, domain.OrderStatusServed)))

		active, err := store.ExistsActiveByTableID(ctx, tableID)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("completed orders do not count as active", func(t *testing.T) {
		store := NewOrderStore()
		tableID := uuid.New()
		require.NoError(t, store.Save(ctx, newOrder(&tableID, domain.OrderStatusCompleted)))

		active, err := store.ExistsActiveByTableID(ctx, tableID)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("orders on other tables do not count", func(t *testing.T) {
		store := NewOrderStore()
		otherTable := uuid.New()
		require.NoError(t, store.Save(ctx, newOrder(&otherTable, domain.OrderStatusWaiting)))

		active, err := store.ExistsActiveByTableID(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("returned orders do not alias stored state", func(t *testing.T) {
		store := NewOrderStore()
		tableID := uuid.New()
		order := newOrder(&tableID, domain.OrderStatusWaiting)
		require.NoError(t, store.Save(ctx, order))

		found, err := store.FindByID(ctx, order.ID)
		require.NoError(t, err)
		found.LineItems[0].Quantity = 99
		*found.TableID = uuid.New()

		again, err := store.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, again.LineItems[0].Quantity)
		assert.Equal(t, tableID, *again.TableID)
	})
}

func TestOrderTableStore(t *testing.T) {
	ctx := context.Background()

	store := NewOrderTableStore()
	table := &domain.OrderTable{ID: uuid.New(), Name: "Table 1"}
	require.NoError(t, store.Save(ctx, table))

	found, err := store.FindByID(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, "Table 1", found.Name)

	tables, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tables, 1)

	_, err = store.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
