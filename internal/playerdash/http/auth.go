package http

import (
	"errors"
	"net/http"

	"github.com/pixelforge/playerdash/internal/playerdash/service"
	"github.com/pixelforge/playerdash/pkg/sessions"
	"github.com/pixelforge/playerdash/pkg/slogx"
)

// sessionManager is the slice of sessions.Manager the auth handlers need.
type sessionManager interface {
	Issue(w http.ResponseWriter, username string) error
	Current(r *http.Request) (string, error)
	Clear(w http.ResponseWriter)
}

// AuthHandler serves the login page and the login/register/logout flows.
type AuthHandler struct {
	Auth     *service.AuthService
	Sessions sessionManager
}

// HandleIndex sends logged-in visitors to the dashboard, everyone else to
// the login page.
func (h *AuthHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Sessions.Current(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginPage renders the combined login/register page.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "login.html", pageData{})
}

// HandleLogin processes a login form submission.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		sessions.SetFlash(w, "Please fill in all fields", "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	identity, err := h.Auth.Login(ctx, r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			sessions.SetFlash(w, "Please fill in all fields", "error")
		case errors.Is(err, service.ErrInvalidCredentials):
			sessions.SetFlash(w, "Invalid credentials. Try again!", "error")
		default:
			log.Error("login failed", "err", err)
			sessions.SetFlash(w, "Something went wrong. Try again later.", "error")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.Issue(w, identity.Username); err != nil {
		log.Error("failed to issue session", "err", err)
		sessions.SetFlash(w, "Something went wrong. Try again later.", "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sessions.SetFlash(w, "Welcome back, pixel warrior!", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleRegister processes a registration form submission. Validation
// failures flash a specific corrective message and return to the login page.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		sessions.SetFlash(w, "Please fill in all fields", "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	identity, err := h.Auth.Register(ctx, r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			sessions.SetFlash(w, "Please fill in all fields", "error")
		case errors.Is(err, service.ErrUsernameTooShort):
			sessions.SetFlash(w, "Username must be at least 3 characters", "error")
		case errors.Is(err, service.ErrPasswordTooShort):
			sessions.SetFlash(w, "Password must be at least 6 characters", "error")
		case errors.Is(err, service.ErrUsernameTaken):
			sessions.SetFlash(w, "Username already exists", "error")
		default:
			log.Error("registration failed", "err", err)
			sessions.SetFlash(w, "Could not create account. Try again later.", "error")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.Issue(w, identity.Username); err != nil {
		log.Error("failed to issue session", "err", err)
		sessions.SetFlash(w, "Something went wrong. Try again later.", "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sessions.SetFlash(w, "Account created successfully! Welcome!", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleLogout clears the session. Logging out twice is not an error.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	sessions.SetFlash(w, "Logged out successfully", "success")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleDashboard renders the dashboard for the authenticated user.
func (h *AuthHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "dashboard.html", pageData{
		Username: usernameFromCtx(r.Context()),
	})
}
