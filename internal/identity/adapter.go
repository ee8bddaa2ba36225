package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrUnavailable        = errors.New("identity service not configured")
)

// User is the authenticated principal as reported by the identity provider
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Session is the provider-issued session handed back to the client. The
// store never mints its own tokens; IDToken is the provider's credential and
// is presented back on authenticated requests.
type Session struct {
	User         User   `json:"user"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresInSec int64  `json:"expires_in"`
}

// Adapter is the external identity collaborator. Authentication is fully
// delegated: the cart and checkout never depend on identity state, and every
// adapter failure is surfaced as a notification with state unchanged.
type Adapter interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, uid string) error
	Verify(ctx context.Context, idToken string) (*User, error)
}

// disabledAdapter is used when no identity provider is configured. Every
// call fails with ErrUnavailable; browsing and checkout are unaffected.
type disabledAdapter struct{}

// NewDisabledAdapter returns an Adapter that rejects every operation
func NewDisabledAdapter() Adapter {
	return disabledAdapter{}
}

func (disabledAdapter) Login(ctx context.Context, email, password string) (*Session, error) {
	return nil, ErrUnavailable
}

func (disabledAdapter) Register(ctx context.Context, email, password string) (*Session, error) {
	return nil, ErrUnavailable
}

func (disabledAdapter) Logout(ctx context.Context, uid string) error {
	return ErrUnavailable
}

func (disabledAdapter) Verify(ctx context.Context, idToken string) (*User, error) {
	return nil, ErrUnavailable
}
