package catalog

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"kitchenpos/internal/adapter/logger"
	"kitchenpos/internal/adapter/memory"
	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

type fixture struct {
	products  *memory.ProductStore
	groups    *memory.MenuGroupStore
	menus     *memory.MenuStore
	profanity *fakeProfanityClient
	publisher *recordingPublisher
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		products:  memory.NewProductStore(),
		groups:    memory.NewMenuGroupStore(),
		menus:     memory.NewMenuStore(),
		profanity: &fakeProfanityClient{},
		publisher: &recordingPublisher{},
	}
	f.service = NewService(f.products, f.groups, f.menus, f.profanity, f.publisher, nil, logger.Nop())
	return f
}

// fakeProfanityClient flags a fixed word list and can simulate a transport
// failure.
type fakeProfanityClient struct {
	err error
}

func (c *fakeProfanityClient) ContainsProfanity(_ context.Context, text string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return strings.Contains(strings.ToLower(text), "damn"), nil
}

type recordingPublisher struct {
	mu         sync.Mutex
	menuHidden []interfaces.MenuHiddenMessage
}

func (p *recordingPublisher) PublishMenuHidden(_ context.Context, msg interfaces.MenuHiddenMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.menuHidden = append(p.menuHidden, msg)
	return nil
}

func (p *recordingPublisher) PublishOrderStatus(_ context.Context, _ interfaces.OrderStatusMessage) error {
	return nil
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func (f *fixture) createProduct(t *testing.T, name string, price int64) *domain.Product {
	t.Helper()
	product, err := f.service.CreateProduct(context.Background(), interfaces.CreateProductCommand{
		Name:  name,
		Price: dec(price),
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) createGroup(t *testing.T, name string) *domain.MenuGroup {
	t.Helper()
	group, err := f.service.CreateMenuGroup(context.Background(), interfaces.CreateMenuGroupCommand{Name: name})
	require.NoError(t, err)
	return group
}

func (f *fixture) createMenu(t *testing.T, name string, price int64, displayed bool, groupID uuid.UUID, items ...interfaces.MenuLineItemCommand) *domain.Menu {
	t.Helper()
	menu, err := f.service.CreateMenu(context.Background(), interfaces.CreateMenuCommand{
		Name:        name,
		Price:       dec(price),
		MenuGroupID: groupID,
		Displayed:   displayed,
		LineItems:   items,
	})
	require.NoError(t, err)
	return menu
}

func (f *fixture) menuByID(t *testing.T, id uuid.UUID) *domain.Menu {
	t.Helper()
	menu, err := f.menus.FindByID(context.Background(), id)
	require.NoError(t, err)
	return menu
}
