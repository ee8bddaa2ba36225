package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDeclined and ErrGatewayTimeout are the typed gateway failures a
	// real processor can return. The simulated processor never produces
	// them, but callers are written against the full contract.
	ErrDeclined       = errors.New("payment declined")
	ErrGatewayTimeout = errors.New("payment gateway timeout")
)

// ProcessRequest carries what the gateway needs to charge a card
type ProcessRequest struct {
	Amount         int64
	CardNumber     string
	CardholderName string
}

// Receipt is the gateway's proof of a successful charge
type Receipt struct {
	Reference   string
	ProcessedAt time.Time
}

// PaymentProcessor is the gateway port. Process blocks for the duration of
// the charge and honors context cancellation.
type PaymentProcessor interface {
	Process(ctx context.Context, req ProcessRequest) (*Receipt, error)
}

// SimulatedProcessor approves every charge after a fixed delay. It stands in
// for a real gateway; cancelling the context aborts the wait.
type SimulatedProcessor struct {
	delay time.Duration
}

func NewSimulatedProcessor(delay time.Duration) *SimulatedProcessor {
	return &SimulatedProcessor{delay: delay}
}

func (p *SimulatedProcessor) Process(ctx context.Context, req ProcessRequest) (*Receipt, error) {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return &Receipt{
			Reference:   uuid.NewString(),
			ProcessedAt: time.Now(),
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
