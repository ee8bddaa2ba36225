package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"kam-store/internal/cart"
	"kam-store/internal/domain"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Stage is one step of the linear shipping -> payment sequence. There is no
// confirmation stage object: confirmation is keyed off the emitted order
// record.
type Stage string

const (
	StageShipping Stage = "shipping"
	StagePayment  Stage = "payment"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoActiveCheckout  = errors.New("no active checkout")
	ErrWrongStage        = errors.New("checkout stage out of order")
	ErrPaymentInProgress = errors.New("payment already in progress")
	ErrNoOrder           = errors.New("no order to confirm")
)

const orderNumberPrefix = "KAM"

// flow is the in-progress checkout for one session
type flow struct {
	stage      Stage
	shipping   *domain.ShippingAddress
	processing bool
}

// Service runs the checkout sequence: entry guard, shipping capture, payment
// and order emission. One flow exists per cart session; a finished flow
// leaves behind the order record for a single confirmation fetch.
type Service struct {
	mu     sync.Mutex
	flows  map[string]*flow
	orders map[string]*domain.OrderRecord

	carts       *cart.Manager
	processor   PaymentProcessor
	shippingFee int64
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewService(carts *cart.Manager, processor PaymentProcessor, shippingFee int64, logger *zap.Logger) *Service {
	return &Service{
		flows:       make(map[string]*flow),
		orders:      make(map[string]*domain.OrderRecord),
		carts:       carts,
		processor:   processor,
		shippingFee: shippingFee,
		validate:    newValidator(),
		logger:      logger,
	}
}

// Begin starts a checkout for the session. An empty cart returns
// ErrEmptyCart and creates no flow state; the caller redirects to the
// catalog. Re-entering an active checkout returns the current stage.
func (s *Service) Begin(ctx context.Context, sessionID string) (Stage, error) {
	store := s.carts.Store(ctx, sessionID)
	if store.State().IsEmpty() {
		return "", ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.flows[sessionID]; ok {
		return f.stage, nil
	}

	s.flows[sessionID] = &flow{stage: StageShipping}
	s.logger.Info("Checkout started", zap.String("session_id", sessionID))
	return StageShipping, nil
}

// Stage returns the current checkout stage for the session
func (s *Service) Stage(sessionID string) (Stage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[sessionID]
	if !ok {
		return "", ErrNoActiveCheckout
	}
	return f.stage, nil
}

// SubmitShipping validates the address and advances the flow to the payment
// stage. Validation failures leave the flow in the shipping stage.
func (s *Service) SubmitShipping(sessionID string, req ShippingRequest) (Stage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[sessionID]
	if !ok {
		return "", ErrNoActiveCheckout
	}
	if f.stage != StageShipping {
		return f.stage, ErrWrongStage
	}

	if err := checkStruct(s.validate, req); err != nil {
		return f.stage, err
	}

	f.shipping = &domain.ShippingAddress{
		FullName:     req.FullName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
	}
	f.stage = StagePayment

	s.logger.Info("Shipping address accepted", zap.String("session_id", sessionID))
	return f.stage, nil
}

// EditShipping moves the flow from payment back to shipping and returns the
// previously entered address for pre-filling. The pending address is kept.
func (s *Service) EditShipping(sessionID string) (*domain.ShippingAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrNoActiveCheckout
	}
	if f.stage != StagePayment {
		return nil, ErrWrongStage
	}
	if f.processing {
		return nil, ErrPaymentInProgress
	}

	f.stage = StageShipping
	addr := *f.shipping
	return &addr, nil
}

// SubmitPayment validates the card, runs the payment processor and, on
// success, emits the order record and clears the cart. Validation failures
// leave the payment stage and the cart untouched.
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, req PaymentRequest) (*domain.OrderRecord, error) {
	s.mu.Lock()
	f, ok := s.flows[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoActiveCheckout
	}
	if f.stage != StagePayment {
		stage := f.stage
		s.mu.Unlock()
		s.logger.Debug("Payment submitted out of order",
			zap.String("session_id", sessionID),
			zap.String("stage", string(stage)),
		)
		return nil, ErrWrongStage
	}
	if f.processing {
		s.mu.Unlock()
		return nil, ErrPaymentInProgress
	}

	if err := checkStruct(s.validate, req); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	store := s.carts.Store(ctx, sessionID)
	snapshot := store.State()
	if snapshot.IsEmpty() {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	shipping := *f.shipping
	f.processing = true
	s.mu.Unlock()

	cardNumber := stripCardNumber(req.CardNumber)
	total := snapshot.Total() + s.shippingFee

	receipt, err := s.processor.Process(ctx, ProcessRequest{
		Amount:         total,
		CardNumber:     cardNumber,
		CardholderName: req.CardName,
	})
	if err != nil {
		s.mu.Lock()
		f.processing = false
		s.mu.Unlock()
		s.logger.Error("Payment processing failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	order := &domain.OrderRecord{
		OrderNumber:     newOrderNumber(),
		Date:            receipt.ProcessedAt,
		LastFourDigits:  cardNumber[len(cardNumber)-4:],
		TotalAmount:     total,
		Email:           req.Email,
		Phone:           req.Phone,
		ShippingAddress: shipping,
		Items:           snapshotItems(snapshot),
	}

	store.Dispatch(ctx, cart.Clear{})

	s.mu.Lock()
	delete(s.flows, sessionID)
	s.orders[sessionID] = order
	s.mu.Unlock()

	s.logger.Info("Order placed",
		zap.String("session_id", sessionID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total", order.TotalAmount),
		zap.String("receipt_ref", receipt.Reference),
	)

	return order, nil
}

// Confirmation returns the order record emitted for the session. The record
// is transient: it is handed out once and then discarded, so a direct visit
// without a completed checkout gets ErrNoOrder.
func (s *Service) Confirmation(sessionID string) (*domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[sessionID]
	if !ok {
		return nil, ErrNoOrder
	}
	delete(s.orders, sessionID)
	return order, nil
}

// Abandon drops any in-progress flow for the session. The cart is left
// alone.
func (s *Service) Abandon(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, sessionID)
}

// newOrderNumber generates "KAM-" plus a random 6 digit suffix. Collisions
// are not checked: orders are never persisted or looked up by number.
func newOrderNumber() string {
	return fmt.Sprintf("%s-%06d", orderNumberPrefix, rand.IntN(1000000))
}

func snapshotItems(state domain.CartState) []domain.OrderLine {
	items := make([]domain.OrderLine, 0, len(state.Lines))
	for _, line := range state.Lines {
		items = append(items, domain.OrderLine{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}
