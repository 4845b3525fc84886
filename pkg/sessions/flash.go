package sessions

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "playerdash_flash"

// Flash is a one-shot user-facing message with a rendering category.
type Flash struct {
	Message  string
	Category string // "success" or "error"
}

// SetFlash queues a flash message for the next page render. The value is
// base64-encoded so arbitrary message text survives cookie encoding rules.
func SetFlash(w http.ResponseWriter, message, category string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(category + "\x00" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return Flash{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Flash{}, false
	}

	category, message, ok := strings.Cut(string(decoded), "\x00")
	if !ok {
		return Flash{}, false
	}
	return Flash{Message: message, Category: category}, true
}
