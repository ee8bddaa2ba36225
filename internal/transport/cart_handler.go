package transport

import (
	"errors"
	"net/http"

	"kam-store/internal/cart"
	"kam-store/internal/catalog"
	"kam-store/internal/domain"
	"kam-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest is the add-to-cart payload
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SetQuantityRequest is the update-quantity payload. Quantity <= 0 removes
// the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ToggleRequest optionally forces the cart open flag instead of flipping it
type ToggleRequest struct {
	Open *bool `json:"open"`
}

// CartLineView is one cart line with display amounts
type CartLineView struct {
	Product         domain.Product `json:"product"`
	Quantity        int            `json:"quantity"`
	Subtotal        int64          `json:"subtotal"`
	SubtotalDisplay string         `json:"subtotal_display"`
}

// CartView is the cart state plus its derived totals
type CartView struct {
	Items        []CartLineView `json:"items"`
	IsOpen       bool           `json:"isOpen"`
	Count        int            `json:"count"`
	Total        int64          `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

// CartHandler handles HTTP requests for the cart store
type CartHandler struct {
	carts      *cart.Manager
	catalog    catalog.Repository
	cookieName string
	logger     *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cart.Manager, repo catalog.Repository, cookieName string, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:      carts,
		catalog:    repo,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.SetQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
		r.Post("/clear", h.Clear)
		r.Post("/toggle", h.Toggle)
	})
}

// Get returns the current cart state
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	middleware.RespondWithJSON(w, http.StatusOK, cartView(store.State()))
}

// AddItem adds one unit of a catalog product to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to load product", zap.String("product_id", req.ProductID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	store := h.store(w, r)
	state := store.Dispatch(r.Context(), cart.AddItem{Product: product})

	h.logger.Info("Item added to cart",
		zap.String("product_id", product.ID),
		zap.Int("cart_count", state.Count()),
	)
	middleware.RespondWithJSON(w, http.StatusOK, cartView(state))
}

// SetQuantity sets the quantity of a cart line; zero or negative removes it
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store := h.store(w, r)
	state := store.Dispatch(r.Context(), cart.SetQuantity{
		ProductID: productID,
		Quantity:  req.Quantity,
	})

	middleware.RespondWithJSON(w, http.StatusOK, cartView(state))
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	store := h.store(w, r)
	state := store.Dispatch(r.Context(), cart.RemoveItem{ProductID: productID})

	middleware.RespondWithJSON(w, http.StatusOK, cartView(state))
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	state := store.Dispatch(r.Context(), cart.Clear{})

	middleware.RespondWithJSON(w, http.StatusOK, cartView(state))
}

// Toggle opens or closes the cart drawer
func (h *CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if r.ContentLength > 0 {
		if err := middleware.DecodeAndValidate(r, &req); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	store := h.store(w, r)
	state := store.Dispatch(r.Context(), cart.Toggle{Open: req.Open})

	middleware.RespondWithJSON(w, http.StatusOK, cartView(state))
}

func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) *cart.Store {
	sessionID := cartSession(w, r, h.cookieName)
	return h.carts.Store(r.Context(), sessionID)
}

func cartView(state domain.CartState) CartView {
	items := make([]CartLineView, 0, len(state.Lines))
	for _, line := range state.Lines {
		items = append(items, CartLineView{
			Product:         line.Product,
			Quantity:        line.Quantity,
			Subtotal:        line.Subtotal(),
			SubtotalDisplay: domain.FormatPrice(line.Subtotal()),
		})
	}

	return CartView{
		Items:        items,
		IsOpen:       state.IsOpen,
		Count:        state.Count(),
		Total:        state.Total(),
		TotalDisplay: domain.FormatPrice(state.Total()),
	}
}
