package transport

import (
	"net/http"

	"github.com/google/uuid"
)

const cartSessionMaxAge = 30 * 24 * 60 * 60 // 30 days

// cartSession returns the cart session id from the request cookie, issuing a
// fresh one when missing. The id scopes the persisted cart slot; two clients
// sharing an id get last-write-wins on the snapshot.
func cartSession(w http.ResponseWriter, r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   cartSessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
