package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"kam-store/internal/checkout"
	"kam-store/internal/domain"
	"kam-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StageResponse reports the current checkout stage
type StageResponse struct {
	Stage checkout.Stage `json:"stage"`
}

// ShippingEditResponse returns the stage plus the previously entered address
// for pre-filling the form
type ShippingEditResponse struct {
	Stage   checkout.Stage         `json:"stage"`
	Address domain.ShippingAddress `json:"address"`
}

// OrderResponse is the emitted order record with its display total
type OrderResponse struct {
	Order        domain.OrderRecord `json:"order"`
	TotalDisplay string             `json:"total_display"`
}

// CheckoutHandler handles HTTP requests for the checkout flow
type CheckoutHandler struct {
	checkout   *checkout.Service
	cookieName string
	logger     *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service *checkout.Service, cookieName string, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:   service,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RegisterRoutes registers all checkout routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Post("/", h.Begin)
		r.Post("/shipping", h.SubmitShipping)
		r.Post("/shipping/edit", h.EditShipping)
		r.Post("/payment", h.SubmitPayment)
		r.Get("/confirmation", h.Confirmation)
	})
}

// Begin starts a checkout for the session's cart
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sessionID := cartSession(w, r, h.cookieName)

	stage, err := h.checkout.Begin(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, StageResponse{Stage: stage})
}

// SubmitShipping validates and stores the shipping address
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	sessionID := cartSession(w, r, h.cookieName)

	var req checkout.ShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stage, err := h.checkout.SubmitShipping(sessionID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, StageResponse{Stage: stage})
}

// EditShipping returns to the shipping step, keeping the pending address
func (h *CheckoutHandler) EditShipping(w http.ResponseWriter, r *http.Request) {
	sessionID := cartSession(w, r, h.cookieName)

	address, err := h.checkout.EditShipping(sessionID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ShippingEditResponse{
		Stage:   checkout.StageShipping,
		Address: *address,
	})
}

// SubmitPayment validates the card, runs the payment and emits the order
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := cartSession(w, r, h.cookieName)

	var req checkout.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.checkout.SubmitPayment(r.Context(), sessionID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, OrderResponse{
		Order:        *order,
		TotalDisplay: domain.FormatPrice(order.TotalAmount),
	})
}

// Confirmation returns the order record once; a visit without a completed
// checkout is sent home
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	sessionID := cartSession(w, r, h.cookieName)

	order, err := h.checkout.Confirmation(sessionID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderResponse{
		Order:        *order,
		TotalDisplay: domain.FormatPrice(order.TotalAmount),
	})
}

func (h *CheckoutHandler) respondError(w http.ResponseWriter, err error) {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		middleware.RespondWithValidationErrors(w, validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		// Entry guard: nothing to check out, send the client back to the
		// catalog
		middleware.RespondWithErrorDetails(w, http.StatusConflict, "cart is empty",
			map[string]interface{}{"redirect": "/"})
	case errors.Is(err, checkout.ErrNoActiveCheckout):
		middleware.RespondWithError(w, http.StatusNotFound, "no active checkout")
	case errors.Is(err, checkout.ErrNoOrder):
		middleware.RespondWithErrorDetails(w, http.StatusNotFound, "no order to confirm",
			map[string]interface{}{"redirect": "/"})
	case errors.Is(err, checkout.ErrWrongStage):
		middleware.RespondWithError(w, http.StatusConflict, "checkout stage out of order")
	case errors.Is(err, checkout.ErrPaymentInProgress):
		middleware.RespondWithError(w, http.StatusConflict, "payment already in progress")
	case errors.Is(err, checkout.ErrDeclined), errors.Is(err, checkout.ErrGatewayTimeout):
		middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("Checkout request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "checkout failed")
	}
}
