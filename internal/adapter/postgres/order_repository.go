package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var tableID, address any
	if order.TableID != nil {
		tableID = order.TableID.String()
	}
	if order.DeliveryAddress != nil {
		address = *order.DeliveryAddress
	}

	query := `
		INSERT INTO orders (id, type, status, ordered_at, table_id, delivery_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
	`
	if err := tx.Exec(ctx, query,
		order.ID.String(), string(order.Type), string(order.Status), order.OrderedAt, tableID, address,
	); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	if err := tx.Exec(ctx, `DELETE FROM order_line_items WHERE order_id = $1`, order.ID.String()); err != nil {
		return fmt.Errorf("failed to clear order line items: %w", err)
	}
	for i, li := range order.LineItems {
		itemQuery := `
			INSERT INTO order_line_items (order_id, menu_id, price, quantity, seq)
			VALUES ($1, $2, $3, $4, $5)
		`
		if err := tx.Exec(ctx, itemQuery,
			order.ID.String(), li.MenuID.String(), li.Price.String(), li.Quantity, i,
		); err != nil {
			return fmt.Errorf("failed to save order line item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id::text, type, status, ordered_at, table_id::text, delivery_address
		FROM orders
		WHERE id = $1
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := r.loadLineItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ExistsActiveByTableID(ctx context.Context, tableID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM orders WHERE table_id = $1 AND status <> $2
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, tableID.String(), string(domain.OrderStatusCompleted)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active orders: %w", err)
	}
	return exists, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id::text, type, status, ordered_at, table_id::text, delivery_address
		FROM orders
		ORDER BY ordered_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadLineItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) loadLineItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT menu_id::text, price::text, quantity
		FROM order_line_items
		WHERE order_id = $1
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query, order.ID.String())
	if err != nil {
		return fmt.Errorf("failed to load order line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			menuID   string
			priceRaw string
			li       domain.OrderLineItem
		)
		if err := rows.Scan(&menuID, &priceRaw, &li.Quantity); err != nil {
			return err
		}
		li.MenuID, err = uuid.Parse(menuID)
		if err != nil {
			return fmt.Errorf("invalid menu id %q: %w", menuID, err)
		}
		li.Price, err = decimal.NewFromString(priceRaw)
		if err != nil {
			return fmt.Errorf("invalid line item price %q: %w", priceRaw, err)
		}
		order.LineItems = append(order.LineItems, li)
	}
	return rows.Err()
}

func scanOrder(row Row) (*domain.Order, error) {
	var (
		order   domain.Order
		id      string
		typ     string
		status  string
		tableID *string
		address *string
	)
	if err := row.Scan(&id, &typ, &status, &order.OrderedAt, &tableID, &address); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id %q: %w", id, err)
	}
	order.ID = parsed
	order.Type = domain.OrderType(typ)
	order.Status = domain.OrderStatus(status)

	if tableID != nil {
		tid, err := uuid.Parse(*tableID)
		if err != nil {
			return nil, fmt.Errorf("invalid table id %q: %w", *tableID, err)
		}
		order.TableID = &tid
	}
	order.DeliveryAddress = address
	return &order, nil
}

type orderTableRepository struct {
	db DB
}

func NewOrderTableRepository(db DB) interfaces.OrderTableRepository {
	return &orderTableRepository{db: db}
}

func (r *orderTableRepository) Save(ctx context.Context, table *domain.OrderTable) error {
	query := `
		INSERT INTO order_tables (id, name, number_of_guests, occupied)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, number_of_guests = EXCLUDED.number_of_guests,
		    occupied = EXCLUDED.occupied
	`
	if err := r.db.Exec(ctx, query,
		table.ID.String(), table.Name, table.NumberOfGuests, table.Occupied,
	); err != nil {
		return fmt.Errorf("failed to save table: %w", err)
	}
	return nil
}

func (r *orderTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderTable, error) {
	query := `
		SELECT id::text, name, number_of_guests, occupied
		FROM order_tables
		WHERE id = $1
	`
	var (
		table domain.OrderTable
		raw   string
	)
	err := r.db.QueryRow(ctx, query, id.String()).Scan(&raw, &table.Name, &table.NumberOfGuests, &table.Occupied)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load table: %w", err)
	}
	table.ID, err = uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid table id %q: %w", raw, err)
	}
	return &table, nil
}

func (r *orderTableRepository) FindAll(ctx context.Context) ([]domain.OrderTable, error) {
	query := `
		SELECT id::text, name, number_of_guests, occupied
		FROM order_tables
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	defer rows.Close()

	var tables []domain.OrderTable
	for rows.Next() {
		var (
			table domain.OrderTable
			raw   string
		)
		if err := rows.Scan(&raw, &table.Name, &table.NumberOfGuests, &table.Occupied); err != nil {
			return nil, err
		}
		table.ID, err = uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid table id %q: %w", raw, err)
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}
