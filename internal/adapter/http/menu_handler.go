package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"kitchenpos/internal/adapter/logger"
	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

type MenuHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewMenuHandler(service interfaces.CatalogService, lgr logger.Logger) *MenuHandler {
	return &MenuHandler{service: service, logger: lgr}
}

type CreateMenuGroupRequest struct {
	Name string `json:"name"`
}

type MenuLineItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

type CreateMenuRequest struct {
	Name        string                `json:"name"`
	Price       *decimal.Decimal      `json:"price"`
	MenuGroupID uuid.UUID             `json:"menu_group_id"`
	Displayed   bool                  `json:"displayed"`
	LineItems   []MenuLineItemRequest `json:"menu_products"`
}

func (h *MenuHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	group, err := h.service.CreateMenuGroup(r.Context(), interfaces.CreateMenuGroupCommand{Name: req.Name})
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/menu-groups/%s", group.ID))
	respondJSON(w, http.StatusCreated, group)
}

func (h *MenuHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.FindAllMenuGroups(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	cmd := interfaces.CreateMenuCommand{
		Name:        req.Name,
		Price:       req.Price,
		MenuGroupID: req.MenuGroupID,
		Displayed:   req.Displayed,
	}
	for _, item := range req.LineItems {
		cmd.LineItems = append(cmd.LineItems, interfaces.MenuLineItemCommand{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	menu, err := h.service.CreateMenu(r.Context(), cmd)
	if err != nil {
		h.logger.Error("menu_creation_failed", "Failed to create menu", nil, err)
		respondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/menus/%s", menu.ID))
	respondJSON(w, http.StatusCreated, menu)
}

func (h *MenuHandler) ChangePrice(w http.ResponseWriter, r *http.Request) {
	menuID, err := uuid.Parse(mux.Vars(r)["menuId"])
	if err != nil {
		respondError(w, fmt.Errorf("invalid menu id: %w", domain.ErrInvalidArgument))
		return
	}

	var req ChangePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	menu, err := h.service.ChangeMenuPrice(r.Context(), menuID, req.Price)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, menu)
}

func (h *MenuHandler) Display(w http.ResponseWriter, r *http.Request) {
	h.toggleDisplay(w, r, h.service.DisplayMenu)
}

func (h *MenuHandler) Hide(w http.ResponseWriter, r *http.Request) {
	h.toggleDisplay(w, r, h.service.HideMenu)
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	menus, err := h.service.FindAllMenus(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, menus)
}

func (h *MenuHandler) toggleDisplay(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (*domain.Menu, error)) {
	menuID, err := uuid.Parse(mux.Vars(r)["menuId"])
	if err != nil {
		respondError(w, fmt.Errorf("invalid menu id: %w", domain.ErrInvalidArgument))
		return
	}

	menu, err := op(r.Context(), menuID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, menu)
}
