package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenpos/internal/adapter/logger"
	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("valid product is saved", func(t *testing.T) {
		f := newFixture()

		product, err := f.service.CreateProduct(ctx, interfaces.CreateProductCommand{
			Name:  "Fried Chicken",
			Price: dec(11000),
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, "Fried Chicken", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(11000)))

		saved, err := f.products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.Name, saved.Name)
	})

	t.Run("nil price is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateProduct(ctx, interfaces.CreateProductCommand{Name: "Fried Chicken"})

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateProduct(ctx, interfaces.CreateProductCommand{
			Name:  "Fried Chicken",
			Price: dec(-1),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateProduct(ctx, interfaces.CreateProductCommand{Price: dec(11000)})

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("profane name is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateProduct(ctx, interfaces.CreateProductCommand{
			Name:  "Damn Good Chicken",
			Price: dec(11000),
		})

		assert.ErrorIs(t, err, domain.ErrProfaneName)
	})

	t.Run("oracle failure fails the operation", func(t *testing.T) {
		f := newFixture()
		f.profanity.err = errors.New("connection refused")

		_, err := f.service.CreateProduct(ctx, interfaces.CreateProductCommand{
			Name:  "Fried Chicken",
			Price: dec(11000),
		})

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrProfaneName)
	})
}

func TestChangeProductPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the price", func(t *testing.T) {
		f := newFixture()
		product := f.createProduct(t, "Fried Chicken", 11000)

		changed, err := f.service.ChangeProductPrice(ctx, product.ID, dec(12000))

		require.NoError(t, err)
		assert.True(t, changed.Price.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("nil price is rejected", func(t *testing.T) {
		f := newFixture()
		product := f.createProduct(t, "Fried Chicken", 11000)

		_, err := f.service.ChangeProductPrice(ctx, product.ID, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		f := newFixture()
		product := f.createProduct(t, "Fried Chicken", 11000)

		_, err := f.service.ChangeProductPrice(ctx, product.ID, dec(-1))

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("unknown product fails", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.ChangeProductPrice(ctx, uuid.New(), dec(12000))

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestChangeProductPrice_CascadingCorrection(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *domain.Product, *domain.Product, *domain.Menu) {
		f := newFixture()
		fried := f.createProduct(t, "Fried Chicken", 11000)
		seasoned := f.createProduct(t, "Seasoned Chicken", 12000)
		group := f.createGroup(t, "Recommended")
		combo := f.createMenu(t, "Chicken Combo", 23000, true, group.ID,
			interfaces.MenuLineItemCommand{ProductID: fried.ID, Quantity: 1},
			interfaces.MenuLineItemCommand{ProductID: seasoned.ID, Quantity: 1},
		)
		return f, fried, seasoned, combo
	}

	t.Run("price drop below menu total hides the menu", func(t *testing.T) {
		f, fried, _, combo := setup(t)

		// Total becomes 22000, below the menu price of 23000.
		_, err := f.service.ChangeProductPrice(ctx, fried.ID, dec(10000))
		require.NoError(t, err)

		assert.False(t, f.menuByID(t, combo.ID).Displayed)
		require.Len(t, f.publisher.menuHidden, 1)
		assert.Equal(t, combo.ID, f.publisher.menuHidden[0].MenuID)
	})

	t.Run("price drop keeping the invariant leaves the menu displayed", func(t *testing.T) {
		f, fried, _, combo := setup(t)

		// Total becomes 23000, still covering the menu price exactly.
		_, err := f.service.ChangeProductPrice(ctx, fried.ID, dec(11000))
		require.NoError(t, err)

		assert.True(t, f.menuByID(t, combo.ID).Displayed)
		assert.Empty(t, f.publisher.menuHidden)
	})

	t.Run("price increase never hides a compliant menu", func(t *testing.T) {
		f, fried, _, combo := setup(t)

		_, err := f.service.ChangeProductPrice(ctx, fried.ID, dec(20000))
		require.NoError(t, err)

		assert.True(t, f.menuByID(t, combo.ID).Displayed)
	})

	t.Run("already hidden menus are left untouched", func(t *testing.T) {
		f, fried, _, combo := setup(t)
		_, err := f.service.HideMenu(ctx, combo.ID)
		require.NoError(t, err)

		_, err = f.service.ChangeProductPrice(ctx, fried.ID, dec(1000))
		require.NoError(t, err)

		assert.False(t, f.menuByID(t, combo.ID).Displayed)
		assert.Empty(t, f.publisher.menuHidden)
	})

	t.Run("unrelated menus are not revalidated", func(t *testing.T) {
		f, fried, _, _ := setup(t)
		other := f.createProduct(t, "Cola", 2000)
		group := f.createGroup(t, "Drinks")
		drink := f.createMenu(t, "Cola Menu", 2000, true, group.ID,
			interfaces.MenuLineItemCommand{ProductID: other.ID, Quantity: 1},
		)

		_, err := f.service.ChangeProductPrice(ctx, fried.ID, dec(1))
		require.NoError(t, err)

		assert.True(t, f.menuByID(t, drink.ID).Displayed)
	})

	t.Run("one failing correction does not block the others", func(t *testing.T) {
		f := newFixture()
		fried := f.createProduct(t, "Fried Chicken", 11000)
		group := f.createGroup(t, "Recommended")
		first := f.createMenu(t, "Solo", 11000, true, group.ID,
			interfaces.MenuLineItemCommand{ProductID: fried.ID, Quantity: 1},
		)
		second := f.createMenu(t, "Double", 22000, true, group.ID,
			interfaces.MenuLineItemCommand{ProductID: fried.ID, Quantity: 2},
		)

		failing := &failingMenuStore{MenuRepository: f.menus, failID: first.ID}
		f.service = NewService(f.products, f.groups, failing, f.profanity, f.publisher, nil, logger.Nop())

		product, err := f.service.ChangeProductPrice(ctx, fried.ID, dec(10000))

		// The failing menu's error surfaces, the other menu is still hidden
		// and the product price change sticks.
		require.Error(t, err)
		require.NotNil(t, product)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(10000)))
		assert.False(t, f.menuByID(t, second.ID).Displayed)
		assert.True(t, f.menuByID(t, first.ID).Displayed)

		saved, serr := f.products.FindByID(ctx, fried.ID)
		require.NoError(t, serr)
		assert.True(t, saved.Price.Equal(decimal.NewFromInt(10000)))
	})
}

// failingMenuStore fails Save for one menu to simulate a transient store
// error during the cascade.
type failingMenuStore struct {
	interfaces.MenuRepository
	failID uuid.UUID
}

func (s *failingMenuStore) Save(ctx context.Context, menu *domain.Menu) error {
	if menu.ID == s.failID {
		return errors.New("store unavailable")
	}
	return s.MenuRepository.Save(ctx, menu)
}
