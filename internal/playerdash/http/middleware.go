package http

import (
	"context"
	"net/http"

	"github.com/pixelforge/playerdash/pkg/httpx"
	"github.com/pixelforge/playerdash/pkg/sessions"
)

type ctxKey string

const ctxKeyUsername ctxKey = "username"

func usernameFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUsername).(string); ok {
		return v
	}
	return ""
}

// RequirePageSession guards server-rendered pages. Anonymous visitors are
// flashed and redirected to the login page.
func RequirePageSession(m *sessions.Manager) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := m.Current(r)
			if err != nil {
				sessions.SetFlash(w, "Please log in first", "error")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUsername, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAPISession guards the JSON endpoints. Anonymous callers get a 401
// JSON error instead of a redirect.
func RequireAPISession(m *sessions.Manager) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := m.Current(r)
			if err != nil {
				httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
					Error: "Not authenticated",
				})
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUsername, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
