package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"kitchenpos/internal/adapter/logger"
	"kitchenpos/internal/domain"
	"kitchenpos/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderService, lgr logger.Logger) *OrderHandler {
	return &OrderHandler{service: service, logger: lgr}
}

type OrderLineItemRequest struct {
	MenuID   uuid.UUID `json:"menu_id"`
	Quantity int64     `json:"quantity"`
}

type CreateOrderRequest struct {
	Type            string                 `json:"type"`
	TableID         *uuid.UUID             `json:"table_id,omitempty"`
	DeliveryAddress *string                `json:"delivery_address,omitempty"`
	LineItems       []OrderLineItemRequest `json:"line_items"`
}

type CreateOrderTableRequest struct {
	Name string `json:"name"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	cmd := interfaces.CreateOrderCommand{
		Type:            req.Type,
		TableID:         req.TableID,
		DeliveryAddress: req.DeliveryAddress,
	}
	for _, item := range req.LineItems {
		cmd.LineItems = append(cmd.LineItems, interfaces.OrderLineItemCommand{
			MenuID:   item.MenuID,
			Quantity: item.Quantity,
		})
	}

	order, err := h.service.Create(r.Context(), cmd)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", nil, err)
		respondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/orders/%s", order.ID))
	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Accept)
}

func (h *OrderHandler) Serve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Serve)
}

func (h *OrderHandler) StartDelivery(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.StartDelivery)
}

func (h *OrderHandler) CompleteDelivery(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.CompleteDelivery)
}

func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Complete)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		respondError(w, fmt.Errorf("invalid order id: %w", domain.ErrInvalidArgument))
		return
	}

	order, err := h.service.FindByID(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.FindAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	table, err := h.service.CreateTable(r.Context(), interfaces.CreateOrderTableCommand{Name: req.Name})
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/order-tables/%s", table.ID))
	respondJSON(w, http.StatusCreated, table)
}

func (h *OrderHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.FindAllTables(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tables)
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (*domain.Order, error)) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		respondError(w, fmt.Errorf("invalid order id: %w", domain.ErrInvalidArgument))
		return
	}

	order, err := op(r.Context(), orderID)
	if err != nil {
		h.logger.Error("order_transition_failed", "Failed to transition order", map[string]interface{}{
			"order_id": orderID.String(),
		}, err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
