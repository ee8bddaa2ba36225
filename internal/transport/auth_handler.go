package transport

import (
	"errors"
	"net/http"

	"kam-store/internal/identity"
	"kam-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CredentialsRequest is the login/register payload
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionResponse reports the authenticated principal
type SessionResponse struct {
	User identity.User `json:"user"`
}

// AuthHandler handles HTTP requests for identity operations. Everything is
// delegated to the external identity adapter; the store holds no credentials
// of its own.
type AuthHandler struct {
	adapter identity.Adapter
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(adapter identity.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{adapter: adapter, logger: logger}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		// Public routes
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/session", h.Session)
		})
	})
}

// Login authenticates against the identity provider
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.adapter.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", session.User.UID))
	middleware.RespondWithJSON(w, http.StatusOK, session)
}

// Register creates an account with the identity provider
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.adapter.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err, "failed to register")
		return
	}

	h.logger.Info("User registered", zap.String("user_id", session.User.UID))
	middleware.RespondWithJSON(w, http.StatusCreated, session)
}

// Logout revokes the authenticated user's sessions
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.adapter.Logout(r.Context(), uid); err != nil {
		h.respondError(w, err, "failed to logout")
		return
	}

	h.logger.Info("User logged out", zap.String("user_id", uid))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Session returns the principal behind the presented token
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	email, _ := middleware.GetUserEmail(r.Context())
	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{
		User: identity.User{UID: uid, Email: email},
	})
}

func (h *AuthHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, identity.ErrEmailInUse):
		middleware.RespondWithError(w, http.StatusConflict, "email already in use")
	case errors.Is(err, identity.ErrInvalidToken):
		middleware.RespondWithError(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, identity.ErrUnavailable):
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "identity service not configured")
	default:
		h.logger.Error("Identity request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, fallback)
	}
}
