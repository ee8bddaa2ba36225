package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseAdapter delegates identity to Firebase Auth. Token verification
// and revocation go through the Admin SDK; password sign-in and sign-up are
// not part of the Admin SDK and use the Identity Toolkit REST API with the
// project's web API key.
type FirebaseAdapter struct {
	auth       *fbauth.Client
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFirebaseAdapter initializes the Firebase app and auth client.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewFirebaseAdapter(ctx context.Context, projectID, credentialsFile, webAPIKey string, logger *zap.Logger) (*FirebaseAdapter, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &FirebaseAdapter{
		auth:       authClient,
		apiKey:     webAPIKey,
		baseURL:    identityToolkitURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}, nil
}

type toolkitRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type toolkitResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Login signs the user in with email and password
func (a *FirebaseAdapter) Login(ctx context.Context, email, password string) (*Session, error) {
	return a.toolkitCall(ctx, "accounts:signInWithPassword", email, password)
}

// Register creates a new account and returns its initial session
func (a *FirebaseAdapter) Register(ctx context.Context, email, password string) (*Session, error) {
	return a.toolkitCall(ctx, "accounts:signUp", email, password)
}

// Logout revokes the user's refresh tokens; outstanding ID tokens expire on
// their own within the hour
func (a *FirebaseAdapter) Logout(ctx context.Context, uid string) error {
	if err := a.auth.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// Verify validates a Firebase ID token and returns the principal
func (a *FirebaseAdapter) Verify(ctx context.Context, idToken string) (*User, error) {
	token, err := a.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		a.logger.Debug("ID token verification failed", zap.Error(err))
		return nil, ErrInvalidToken
	}

	user := &User{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	return user, nil
}

func (a *FirebaseAdapter) toolkitCall(ctx context.Context, endpoint, email, password string) (*Session, error) {
	if a.apiKey == "" {
		return nil, ErrUnavailable
	}

	body, err := json.Marshal(toolkitRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", a.baseURL, endpoint, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	var parsed toolkitResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}

	if parsed.Error != nil {
		return nil, mapToolkitError(parsed.Error.Message)
	}

	expiresIn, _ := strconv.ParseInt(parsed.ExpiresIn, 10, 64)

	return &Session{
		User:         User{UID: parsed.LocalID, Email: parsed.Email},
		IDToken:      parsed.IDToken,
		RefreshToken: parsed.RefreshToken,
		ExpiresInSec: expiresIn,
	}, nil
}

func mapToolkitError(message string) error {
	switch {
	case strings.HasPrefix(message, "EMAIL_EXISTS"):
		return ErrEmailInUse
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("identity service error: %s", message)
	}
}
