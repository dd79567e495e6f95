package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(19, 2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu_groups (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menus (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(19, 2) NOT NULL,
		menu_group_id UUID NOT NULL REFERENCES menu_groups (id),
		displayed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS menu_products (
		menu_id UUID NOT NULL REFERENCES menus (id),
		product_id UUID NOT NULL REFERENCES products (id),
		quantity BIGINT NOT NULL,
		seq INT NOT NULL,
		PRIMARY KEY (menu_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_products_product_id ON menu_products (product_id)`,
	`CREATE TABLE IF NOT EXISTS order_tables (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		number_of_guests INT NOT NULL DEFAULT 0,
		occupied BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		ordered_at TIMESTAMPTZ NOT NULL,
		table_id UUID REFERENCES order_tables (id),
		delivery_address TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS order_line_items (
		order_id UUID NOT NULL REFERENCES orders (id),
		menu_id UUID NOT NULL REFERENCES menus (id),
		price NUMERIC(19, 2) NOT NULL,
		quantity BIGINT NOT NULL,
		seq INT NOT NULL,
		PRIMARY KEY (order_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_table_id ON orders (table_id)`,
}

// EnsureSchema creates missing tables and indexes at startup.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
