package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"kam-store/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter is a canned identity provider for handler tests
type fakeAdapter struct {
	users      map[string]string // email -> password
	loggedOut  []string
	validToken string
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		users:      map[string]string{"ada@example.com": "s3cret99"},
		validToken: "good-token",
	}
}

func (f *fakeAdapter) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	if pwd, ok := f.users[email]; !ok || pwd != password {
		return nil, identity.ErrInvalidCredentials
	}
	return &identity.Session{
		User:         identity.User{UID: "uid-" + email, Email: email},
		IDToken:      f.validToken,
		RefreshToken: "refresh",
		ExpiresInSec: 3600,
	}, nil
}

func (f *fakeAdapter) Register(ctx context.Context, email, password string) (*identity.Session, error) {
	if _, ok := f.users[email]; ok {
		return nil, identity.ErrEmailInUse
	}
	f.users[email] = password
	return &identity.Session{
		User:    identity.User{UID: "uid-" + email, Email: email},
		IDToken: f.validToken,
	}, nil
}

func (f *fakeAdapter) Logout(ctx context.Context, uid string) error {
	f.loggedOut = append(f.loggedOut, uid)
	return nil
}

func (f *fakeAdapter) Verify(ctx context.Context, idToken string) (*identity.User, error) {
	if idToken != f.validToken {
		return nil, identity.ErrInvalidToken
	}
	return &identity.User{UID: "uid-ada@example.com", Email: "ada@example.com"}, nil
}

func doAuthed(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, data
}

func TestAuth_Login(t *testing.T) {
	srv, client := newTestServer(t, newFakeAdapter())

	resp, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login",
		CredentialsRequest{Email: "ada@example.com", Password: "s3cret99"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session identity.Session
	decodeInto(t, body, &session)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.NotEmpty(t, session.IDToken)
}

func TestAuth_LoginBadPassword(t *testing.T) {
	srv, client := newTestServer(t, newFakeAdapter())

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login",
		CredentialsRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_LoginValidation(t *testing.T) {
	srv, client := newTestServer(t, newFakeAdapter())

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login",
		CredentialsRequest{Email: "not-an-email", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuth_Register(t *testing.T) {
	srv, client := newTestServer(t, newFakeAdapter())

	resp, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/register",
		CredentialsRequest{Email: "obi@example.com", Password: "s3cret99"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session identity.Session
	decodeInto(t, body, &session)
	assert.Equal(t, "obi@example.com", session.User.Email)
}

func TestAuth_RegisterExistingEmail(t *testing.T) {
	srv, client := newTestServer(t, newFakeAdapter())

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/register",
		CredentialsRequest{Email: "ada@example.com", Password: "s3cret99"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuth_SessionRequiresToken(t *testing.T) {
	srv, client := newTestServer(t, newFakeAdapter())

	resp, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doAuthed(t, client, http.MethodGet, srv.URL+"/api/auth/session", "bad-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_SessionWithValidToken(t *testing.T) {
	adapter := newFakeAdapter()
	srv, client := newTestServer(t, adapter)

	resp, body := doAuthed(t, client, http.MethodGet, srv.URL+"/api/auth/session", adapter.validToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session SessionResponse
	decodeInto(t, body, &session)
	assert.Equal(t, "uid-ada@example.com", session.User.UID)
	assert.Equal(t, "ada@example.com", session.User.Email)
}

func TestAuth_Logout(t *testing.T) {
	adapter := newFakeAdapter()
	srv, client := newTestServer(t, adapter)

	resp, _ := doAuthed(t, client, http.MethodPost, srv.URL+"/api/auth/logout", adapter.validToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"uid-ada@example.com"}, adapter.loggedOut)
}

func TestAuth_DisabledProvider(t *testing.T) {
	srv, client := newTestServer(t, identity.NewDisabledAdapter())

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login",
		CredentialsRequest{Email: "ada@example.com", Password: "s3cret99"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
