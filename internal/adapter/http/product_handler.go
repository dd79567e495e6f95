package http

import (
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

type ProductHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewProductHandler(service interfaces.CatalogService, lgr logger.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: lgr}
}

type CreateProductRequest struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type ChangePriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	product, err := h.service.CreateProduct(r.Context(), interfaces.CreateProductCommand{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.logger.Error("product_creation_failed", "Failed to create product", nil, err)
		respondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/products/%s", product.ID))
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) ChangePrice(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		respondError(w, fmt.Errorf("invalid product id: %w", domain.ErrInvalidArgument))
		return
	}

	var req ChangePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	product, err := h.service.ChangeProductPrice(r.Context(), productID, req.Price)
	if err != nil {
		h.logger.Error("product_price_change_failed", "Failed to change product price", map[string]interface{}{
			"product_id": productID.String(),
		}, err)
		// The price change itself may have succeeded with only the cascade
		// failing; the error is surfaced either way.
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FindAllProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}
