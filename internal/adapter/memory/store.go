// Package memory provides map-backed implementations of the repository
// contracts. They back the service tests and the storage-free local mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]domain.Product)}
}

var _ interfaces.ProductRepository = (*ProductStore)(nil)

func (s *ProductStore) Save(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = *product
	return nil
}

func (s *ProductStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return &product, nil
}

func (s *ProductStore) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []domain.Product
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := s.products[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *ProductStore) FindAll(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	return products, nil
}

type MenuGroupStore struct {
	mu     sync.RWMutex
	groups map[uuid.UUID]domain.MenuGroup
}

func NewMenuGroupStore() *MenuGroupStore {
	return &MenuGroupStore{groups: make(map[uuid.UUID]domain.MenuGroup)}
}

var _ interfaces.MenuGroupRepository = (*MenuGroupStore)(nil)

func (s *MenuGroupStore) Save(_ context.Context, group *domain.MenuGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.ID] = *group
	return nil
}

func (s *MenuGroupStore) FindByID(_ context.Context, id uuid.UUID) (*domain.MenuGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("menu group %s: %w", id, domain.ErrNotFound)
	}
	return &group, nil
}

func (s *MenuGroupStore) FindAll(_ context.Context) ([]domain.MenuGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]domain.MenuGroup, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, group)
	}
	return groups, nil
}

type MenuStore struct {
	mu    sync.RWMutex
	menus map[uuid.UUID]domain.Menu
}

func NewMenuStore() *MenuStore {
	return &MenuStore{menus: make(map[uuid.UUID]domain.Menu)}
}

var _ interfaces.MenuRepository = (*MenuStore)(nil)

func (s *MenuStore) Save(_ context.Context, menu *domain.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[menu.ID] = cloneMenu(*menu)
	return nil
}

func (s *MenuStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	menu, ok := s.menus[id]
	if !ok {
		return nil, fmt.Errorf("menu %s: %w", id, domain.ErrNotFound)
	}
	menu = cloneMenu(menu)
	return &menu, nil
}

func (s *MenuStore) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var menus []domain.Menu
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if menu, ok := s.menus[id]; ok {
			menus = append(menus, cloneMenu(menu))
		}
	}
	return menus, nil
}

func (s *MenuStore) FindAllByProductID(_ context.Context, productID uuid.UUID) ([]domain.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var menus []domain.Menu
	for _, menu := range s.menus {
		for _, mp := range menu.MenuProducts {
			if mp.ProductID == productID {
				menus = append(menus, cloneMenu(menu))
				break
			}
		}
	}
	return menus, nil
}

func (s *MenuStore) FindAll(_ context.Context) ([]domain.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	menus := make([]domain.Menu, 0, len(s.menus))
	for _, menu := range s.menus {
		menus = append(menus, cloneMenu(menu))
	}
	return menus, nil
}

type OrderStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[uuid.UUID]domain.Order)}
}

var _ interfaces.OrderRepository = (*OrderStore)(nil)

func (s *OrderStore) Save(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	order = cloneOrder(order)
	return &order, nil
}

func (s *OrderStore) ExistsActiveByTableID(_ context.Context, tableID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.TableID != nil && *order.TableID == tableID && order.Status != domain.OrderStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (s *OrderStore) FindAll(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, cloneOrder(order))
	}
	return orders, nil
}

type OrderTableStore struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]domain.OrderTable
}

func NewOrderTableStore() *OrderTableStore {
	return &OrderTableStore{tables: make(map[uuid.UUID]domain.OrderTable)}
}

var _ interfaces.OrderTableRepository = (*OrderTableStore)(nil)

func (s *OrderTableStore) Save(_ context.Context, table *domain.OrderTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.ID] = *table
	return nil
}

func (s *OrderTableStore) FindByID(_ context.Context, id uuid.UUID) (*domain.OrderTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", id, domain.ErrNotFound)
	}
	return &table, nil
}

func (s *OrderTableStore) FindAll(_ context.Context) ([]domain.OrderTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tables := make([]domain.OrderTable, 0, len(s.tables))
	for _, table := range s.tables {
		tables = append(tables, table)
	}
	return tables, nil
}

// Stored entities carry slices, so copies must not alias the map contents.

func cloneMenu(menu domain.Menu) domain.Menu {
	items := make([]domain.MenuProduct, len(menu.MenuProducts))
	copy(items, menu.MenuProducts)
	menu.MenuProducts = items
	return menu
}

func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderLineItem, len(order.LineItems))
	copy(items, order.LineItems)
	order.LineItems = items
	if order.TableID != nil {
		id := *order.TableID
		order.TableID = &id
	}
	if order.DeliveryAddress != nil {
		addr := *order.DeliveryAddress
		order.DeliveryAddress = &addr
	}
	return order
}
