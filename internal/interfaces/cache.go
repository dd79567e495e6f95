package interfaces

import (
	"context"

	"kitchenpos/internal/domain"
)

// MenuCache caches the full menu listing. Every menu mutation invalidates it;
// a miss is reported as (nil, nil).
type MenuCache interface {
	GetMenus(ctx context.Context) ([]domain.Menu, error)
	SetMenus(ctx context.Context, menus []domain.Menu) error
	Invalidate(ctx context.Context) error
}
