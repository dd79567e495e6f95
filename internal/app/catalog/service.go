package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kitchenpos/internal/adapter/logger"
	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

// Service owns the catalog: products, menu groups and menus. It enforces the
// menu pricing invariant at creation and display time and runs the cascading
// correction when a product price change breaks the invariant for menus that
// reference the product.
type Service struct {
	products  interfaces.ProductRepository
	groups    interfaces.MenuGroupRepository
	menus     interfaces.MenuRepository
	profanity interfaces.ProfanityClient
	publisher interfaces.EventPublisher
	cache     interfaces.MenuCache
	logger    logger.Logger
}

func NewService(
	products interfaces.ProductRepository,
	groups interfaces.MenuGroupRepository,
	menus interfaces.MenuRepository,
	profanity interfaces.ProfanityClient,
	publisher interfaces.EventPublisher,
	cache interfaces.MenuCache,
	lgr logger.Logger,
) *Service {
	return &Service{
		products:  products,
		groups:    groups,
		menus:     menus,
		profanity: profanity,
		publisher: publisher,
		cache:     cache,
		logger:    lgr,
	}
}

var _ interfaces.CatalogService = (*Service)(nil)

func (s *Service) CreateProduct(ctx context.Context, cmd interfaces.CreateProductCommand) (*domain.Product, error) {
	if cmd.Price == nil || cmd.Price.IsNegative() {
		return nil, fmt.Errorf("product price must be a non-negative amount: %w", domain.ErrInvalidArgument)
	}
	if err := s.checkName(ctx, "product", cmd.Name); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:    uuid.New(),
		Name:  cmd.Name,
		Price: *cmd.Price,
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Debug("product_created", "Product created", map[string]interface{}{
		"product_id": product.ID.String(),
		"price":      product.Price.String(),
	})
	return product, nil
}

// ChangeProductPrice updates the product price and then re-validates every
// menu referencing the product, hiding the ones whose pricing invariant no
// longer holds. A correction failure for one menu never blocks the others and
// never rolls back the price change; collected failures are returned alongside
// the updated product.
func (s *Service) ChangeProductPrice(ctx context.Context, productID uuid.UUID, price *decimal.Decimal) (*domain.Product, error) {
	if price == nil || price.IsNegative() {
		return nil, fmt.Errorf("product price must be a non-negative amount: %w", domain.ErrInvalidArgument)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Price = *price

	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	if err := s.onProductPriceChanged(ctx, product); err != nil {
		return product, fmt.Errorf("cascading menu correction: %w", err)
	}
	return product, nil
}

func (s *Service) FindAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll(ctx)
}

// onProductPriceChanged re-checks the pricing invariant of every menu that
// references the changed product against its new price and forces failing
// menus out of the visible set. Hidden menus are left untouched. Errors are
// collected per menu and joined.
func (s *Service) onProductPriceChanged(ctx context.Context, product *domain.Product) error {
	menus, err := s.menus.FindAllByProductID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to enumerate menus referencing product %s: %w", product.ID, err)
	}

	var failures []error
	for i := range menus {
		menu := &menus[i]
		if !menu.Displayed {
			continue
		}

		products, err := s.products.FindAllByIDs(ctx, menu.ProductIDs())
		if err != nil {
			failures = append(failures, fmt.Errorf("menu %s: %w", menu.ID, err))
			continue
		}

		verr := ValidateMenuPricing(&menu.Price, menu.MenuProducts, productsByID(products))
		if verr == nil {
			continue
		}
		if !errors.Is(verr, domain.ErrAmountExceeded) {
			failures = append(failures, fmt.Errorf("menu %s: %w", menu.ID, verr))
			continue
		}

		menu.Displayed = false
		if err := s.menus.Save(ctx, menu); err != nil {
			failures = append(failures, fmt.Errorf("menu %s: %w", menu.ID, err))
			continue
		}

		s.logger.Info("menu_hidden", "Menu hidden after product price change", map[string]interface{}{
			"menu_id":    menu.ID.String(),
			"product_id": product.ID.String(),
		})
		s.publishMenuHidden(ctx, menu, product)
		s.invalidateCache(ctx)
	}

	return errors.Join(failures...)
}

func (s *Service) CreateMenuGroup(ctx context.Context, cmd interfaces.CreateMenuGroupCommand) (*domain.MenuGroup, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("menu group name must not be empty: %w", domain.ErrInvalidArgument)
	}

	group := &domain.MenuGroup{
		ID:   uuid.New(),
		Name: cmd.Name,
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save menu group: %w", err)
	}
	return group, nil
}

func (s *Service) FindAllMenuGroups(ctx context.Context) ([]domain.MenuGroup, error) {
	return s.groups.FindAll(ctx)
}

// CreateMenu checks preconditions in order, first failure wins: name, menu
// group, batch product resolution, pricing invariant.
func (s *Service) CreateMenu(ctx context.Context, cmd interfaces.CreateMenuCommand) (*domain.Menu, error) {
	if err := s.checkName(ctx, "menu", cmd.Name); err != nil {
		return nil, err
	}

	if _, err := s.groups.FindByID(ctx, cmd.MenuGroupID); err != nil {
		return nil, err
	}

	if len(cmd.LineItems) == 0 {
		return nil, fmt.Errorf("menu must contain at least one line item: %w", domain.ErrInvalidLineItems)
	}
	lineItems := make([]domain.MenuProduct, len(cmd.LineItems))
	for i, item := range cmd.LineItems {
		lineItems[i] = domain.MenuProduct{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	menu := &domain.Menu{
		ID:           uuid.New(),
		Name:         cmd.Name,
		MenuGroupID:  cmd.MenuGroupID,
		MenuProducts: lineItems,
		Displayed:    cmd.Displayed,
	}

	products, err := s.products.FindAllByIDs(ctx, menu.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	byID := productsByID(products)
	for _, item := range lineItems {
		if _, ok := byID[item.ProductID]; !ok {
			return nil, fmt.Errorf("product %s is not registered: %w", item.ProductID, domain.ErrInvalidLineItems)
		}
	}

	if err := ValidateMenuPricing(cmd.Price, lineItems, byID); err != nil {
		return nil, err
	}
	menu.Price = *cmd.Price

	if err := s.menus.Save(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}
	s.invalidateCache(ctx)

	s.logger.Debug("menu_created", "Menu created", map[string]interface{}{
		"menu_id":   menu.ID.String(),
		"displayed": menu.Displayed,
	})
	return menu, nil
}

// ChangeMenuPrice re-validates the new price against current product prices.
// The display state is left as is: a price that is valid the moment it is set
// needs no demotion.
func (s *Service) ChangeMenuPrice(ctx context.Context, menuID uuid.UUID, price *decimal.Decimal) (*domain.Menu, error) {
	if price == nil || price.IsNegative() {
		return nil, fmt.Errorf("menu price must be a non-negative amount: %w", domain.ErrInvalidArgument)
	}

	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	byID, err := s.resolveMenuProducts(ctx, menu)
	if err != nil {
		return nil, err
	}
	if err := ValidateMenuPricing(price, menu.MenuProducts, byID); err != nil {
		return nil, err
	}

	menu.Price = *price
	if err := s.menus.Save(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}
	s.invalidateCache(ctx)
	return menu, nil
}

// DisplayMenu re-checks the pricing invariant against current product prices
// since they may have drifted after the menu was created or hidden.
func (s *Service) DisplayMenu(ctx context.Context, menuID uuid.UUID) (*domain.Menu, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	byID, err := s.resolveMenuProducts(ctx, menu)
	if err != nil {
		return nil, err
	}
	if err := ValidateMenuPricing(&menu.Price, menu.MenuProducts, byID); err != nil {
		return nil, err
	}

	menu.Displayed = true
	if err := s.menus.Save(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}
	s.invalidateCache(ctx)
	return menu, nil
}

// HideMenu needs no invariant check; hiding is always safe.
func (s *Service) HideMenu(ctx context.Context, menuID uuid.UUID) (*domain.Menu, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	menu.Displayed = false
	if err := s.menus.Save(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}
	s.invalidateCache(ctx)
	return menu, nil
}

func (s *Service) FindAllMenus(ctx context.Context) ([]domain.Menu, error) {
	if s.cache != nil {
		if menus, err := s.cache.GetMenus(ctx); err != nil {
			s.logger.Error("cache_read_failed", "Failed to read menu cache", nil, err)
		} else if menus != nil {
			return menus, nil
		}
	}

	menus, err := s.menus.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetMenus(ctx, menus); err != nil {
			s.logger.Error("cache_write_failed", "Failed to fill menu cache", nil, err)
		}
	}
	return menus, nil
}

func (s *Service) resolveMenuProducts(ctx context.Context, menu *domain.Menu) (map[uuid.UUID]domain.Product, error) {
	products, err := s.products.FindAllByIDs(ctx, menu.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	return productsByID(products), nil
}

func (s *Service) checkName(ctx context.Context, kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name must not be empty: %w", kind, domain.ErrInvalidArgument)
	}
	profane, err := s.profanity.ContainsProfanity(ctx, name)
	if err != nil {
		return fmt.Errorf("profanity check for %s name: %w", kind, err)
	}
	if profane {
		return fmt.Errorf("%s %w", kind, domain.ErrProfaneName)
	}
	return nil
}

func (s *Service) publishMenuHidden(ctx context.Context, menu *domain.Menu, product *domain.Product) {
	if s.publisher == nil {
		return
	}
	msg := interfaces.MenuHiddenMessage{
		MenuID:    menu.ID,
		MenuName:  menu.Name,
		ProductID: product.ID,
		MenuPrice: menu.Price.String(),
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishMenuHidden(ctx, msg); err != nil {
		s.logger.Error("publish_failed", "Failed to publish menu hidden event", map[string]interface{}{
			"menu_id": menu.ID.String(),
		}, err)
	}
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("cache_invalidate_failed", "Failed to invalidate menu cache", nil, err)
	}
}
