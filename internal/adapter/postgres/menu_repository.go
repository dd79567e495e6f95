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

type menuGroupRepository struct {
	db DB
}

func NewMenuGroupRepository(db DB) interfaces.MenuGroupRepository {
	return &menuGroupRepository{db: db}
}

func (r *menuGroupRepository) Save(ctx context.Context, group *domain.MenuGroup) error {
	query := `
		INSERT INTO menu_groups (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`
	if err := r.db.Exec(ctx, query, group.ID.String(), group.Name); err != nil {
		return fmt.Errorf("failed to save menu group: %w", err)
	}
	return nil
}

func (r *menuGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MenuGroup, error) {
	query := `SELECT id::text, name FROM menu_groups WHERE id = $1`

	var (
		group domain.MenuGroup
		raw   string
	)
	err := r.db.QueryRow(ctx, query, id.String()).Scan(&raw, &group.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu group %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load menu group: %w", err)
	}
	group.ID, err = uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid menu group id %q: %w", raw, err)
	}
	return &group, nil
}

func (r *menuGroupRepository) FindAll(ctx context.Context) ([]domain.MenuGroup, error) {
	query := `SELECT id::text, name FROM menu_groups ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.MenuGroup
	for rows.Next() {
		var (
			group domain.MenuGroup
			raw   string
		)
		if err := rows.Scan(&raw, &group.Name); err != nil {
			return nil, err
		}
		group.ID, err = uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid menu group id %q: %w", raw, err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

type menuRepository struct {
	db DB
}

func NewMenuRepository(db DB) interfaces.MenuRepository {
	return &menuRepository{db: db}
}

// Save writes the menu and its line items in one transaction; line items are
// replaced wholesale since they have no identity of their own.
func (r *menuRepository) Save(ctx context.Context, menu *domain.Menu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO menus (id, name, price, menu_group_id, displayed)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, price = EXCLUDED.price,
		    menu_group_id = EXCLUDED.menu_group_id, displayed = EXCLUDED.displayed
	`
	if err := tx.Exec(ctx, query,
		menu.ID.String(), menu.Name, menu.Price.String(), menu.MenuGroupID.String(), menu.Displayed,
	); err != nil {
		return fmt.Errorf("failed to save menu: %w", err)
	}

	if err := tx.Exec(ctx, `DELETE FROM menu_products WHERE menu_id = $1`, menu.ID.String()); err != nil {
		return fmt.Errorf("failed to clear menu products: %w", err)
	}
	for i, mp := range menu.MenuProducts {
		itemQuery := `
			INSERT INTO menu_products (menu_id, product_id, quantity, seq)
			VALUES ($1, $2, $3, $4)
		`
		if err := tx.Exec(ctx, itemQuery, menu.ID.String(), mp.ProductID.String(), mp.Quantity, i); err != nil {
			return fmt.Errorf("failed to save menu product: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *menuRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	query := `
		SELECT id::text, name, price::text, menu_group_id::text, displayed
		FROM menus
		WHERE id = $1
	`
	menu, err := scanMenu(r.db.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	if err := r.loadMenuProducts(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *menuRepository) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Menu, error) {
	query := `
		SELECT id::text, name, price::text, menu_group_id::text, displayed
		FROM menus
		WHERE id = ANY($1)
	`
	return r.queryMenus(ctx, query, uuidStrings(ids))
}

func (r *menuRepository) FindAllByProductID(ctx context.Context, productID uuid.UUID) ([]domain.Menu, error) {
	query := `
		SELECT DISTINCT m.id::text, m.name, m.price::text, m.menu_group_id::text, m.displayed
		FROM menus m
		JOIN menu_products mp ON mp.menu_id = m.id
		WHERE mp.product_id = $1
	`
	return r.queryMenus(ctx, query, productID.String())
}

func (r *menuRepository) FindAll(ctx context.Context) ([]domain.Menu, error) {
	query := `
		SELECT id::text, name, price::text, menu_group_id::text, displayed
		FROM menus
		ORDER BY name
	`
	return r.queryMenus(ctx, query)
}

func (r *menuRepository) queryMenus(ctx context.Context, query string, args ...any) ([]domain.Menu, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load menus: %w", err)
	}
	defer rows.Close()

	var menus []domain.Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, *menu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range menus {
		if err := r.loadMenuProducts(ctx, &menus[i]); err != nil {
			return nil, err
		}
	}
	return menus, nil
}

func (r *menuRepository) loadMenuProducts(ctx context.Context, menu *domain.Menu) error {
	query := `
		SELECT product_id::text, quantity
		FROM menu_products
		WHERE menu_id = $1
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query, menu.ID.String())
	if err != nil {
		return fmt.Errorf("failed to load menu products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			raw string
			mp  domain.MenuProduct
		)
		if err := rows.Scan(&raw, &mp.Quantity); err != nil {
			return err
		}
		mp.ProductID, err = uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid product id %q: %w", raw, err)
		}
		menu.MenuProducts = append(menu.MenuProducts, mp)
	}
	return rows.Err()
}

func scanMenu(row Row) (*domain.Menu, error) {
	var (
		menu     domain.Menu
		id       string
		priceRaw string
		groupID  string
	)
	if err := row.Scan(&id, &menu.Name, &priceRaw, &groupID, &menu.Displayed); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid menu id %q: %w", id, err)
	}
	menu.ID = parsed

	menu.MenuGroupID, err = uuid.Parse(groupID)
	if err != nil {
		return nil, fmt.Errorf("invalid menu group id %q: %w", groupID, err)
	}

	menu.Price, err = decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid menu price %q: %w", priceRaw, err)
	}
	return &menu, nil
}
