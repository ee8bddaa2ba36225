package transport

import (
	"errors"
	"net/http"

	"kam-store/internal/catalog"
	"kam-store/internal/domain"
	"kam-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductView is a catalog product with its display price
type ProductView struct {
	domain.Product
	PriceDisplay string `json:"price_display"`
}

// ProductListResponse wraps a product listing
type ProductListResponse struct {
	Products []ProductView `json:"products"`
	Total    int           `json:"total"`
}

// CatalogHandler handles HTTP requests for the product catalog
type CatalogHandler struct {
	catalog catalog.Repository
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(repo catalog.Repository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: repo, logger: logger}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/{productID}", h.Get)
	})
}

// List returns the catalog, optionally filtered by category
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	var items []domain.Product

	if raw := r.URL.Query().Get("category"); raw != "" {
		category := domain.Category(raw)
		if !category.Valid() {
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown category")
			return
		}
		items = h.catalog.FilterByCategory(category)
	} else {
		items = h.catalog.All()
	}

	middleware.RespondWithJSON(w, http.StatusOK, productList(items))
}

// Search returns products matching the q parameter
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing search query")
		return
	}

	items := h.catalog.Search(query)
	middleware.RespondWithJSON(w, http.StatusOK, productList(items))
}

// Get returns a single product by id
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.catalog.FindByID(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to load product", zap.String("product_id", productID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductView{
		Product:      product,
		PriceDisplay: domain.FormatPrice(product.Price),
	})
}

func productList(items []domain.Product) ProductListResponse {
	views := make([]ProductView, 0, len(items))
	for _, p := range items {
		views = append(views, ProductView{
			Product:      p,
			PriceDisplay: domain.FormatPrice(p.Price),
		})
	}
	return ProductListResponse{Products: views, Total: len(views)}
}
