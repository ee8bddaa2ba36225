package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newToolkitTestAdapter points the adapter's REST calls at a stub identity
// toolkit. The Admin SDK client is nil; only the password endpoints are
// exercised here.
func newToolkitTestAdapter(t *testing.T, handler http.HandlerFunc) *FirebaseAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &FirebaseAdapter{
		apiKey:     "test-api-key",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: time.Second},
		logger:     zap.NewNop(),
	}
}

func TestFirebaseAdapter_LoginSuccess(t *testing.T) {
	adapter := newToolkitTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "accounts:signInWithPassword")
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@example.com", req["email"])
		assert.Equal(t, true, req["returnSecureToken"])

		json.NewEncoder(w).Encode(map[string]string{
			"localId":      "uid-1",
			"email":        "ada@example.com",
			"idToken":      "id-token",
			"refreshToken": "refresh-token",
			"expiresIn":    "3600",
		})
	})

	session, err := adapter.Login(context.Background(), "ada@example.com", "s3cret99")
	require.NoError(t, err)

	assert.Equal(t, "uid-1", session.User.UID)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, "id-token", session.IDToken)
	assert.Equal(t, "refresh-token", session.RefreshToken)
	assert.Equal(t, int64(3600), session.ExpiresInSec)
}

func TestFirebaseAdapter_LoginInvalidCredentials(t *testing.T) {
	adapter := newToolkitTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "INVALID_LOGIN_CREDENTIALS"},
		})
	})

	_, err := adapter.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFirebaseAdapter_RegisterExistingEmail(t *testing.T) {
	adapter := newToolkitTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "accounts:signUp")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "EMAIL_EXISTS"},
		})
	})

	_, err := adapter.Register(context.Background(), "ada@example.com", "s3cret99")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestFirebaseAdapter_MissingAPIKey(t *testing.T) {
	adapter := &FirebaseAdapter{
		httpClient: &http.Client{Timeout: time.Second},
		logger:     zap.NewNop(),
	}

	_, err := adapter.Login(context.Background(), "ada@example.com", "s3cret99")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMapToolkitError(t *testing.T) {
	assert.ErrorIs(t, mapToolkitError("EMAIL_EXISTS"), ErrEmailInUse)
	assert.ErrorIs(t, mapToolkitError("EMAIL_NOT_FOUND"), ErrInvalidCredentials)
	assert.ErrorIs(t, mapToolkitError("INVALID_PASSWORD"), ErrInvalidCredentials)
	assert.ErrorIs(t, mapToolkitError("INVALID_LOGIN_CREDENTIALS"), ErrInvalidCredentials)
	// Lockout messages carry a suffix
	assert.ErrorIs(t, mapToolkitError("INVALID_PASSWORD : TOO_MANY_ATTEMPTS"), ErrInvalidCredentials)

	err := mapToolkitError("OPERATION_NOT_ALLOWED")
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrEmailInUse)
}

func TestDisabledAdapter(t *testing.T) {
	adapter := NewDisabledAdapter()
	ctx := context.Background()

	_, err := adapter.Login(ctx, "ada@example.com", "s3cret99")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = adapter.Register(ctx, "ada@example.com", "s3cret99")
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, adapter.Logout(ctx, "uid-1"), ErrUnavailable)

	_, err = adapter.Verify(ctx, "token")
	assert.ErrorIs(t, err, ErrUnavailable)
}
