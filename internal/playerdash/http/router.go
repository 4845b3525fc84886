package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pixelforge/playerdash/internal/playerdash/service"
	"github.com/pixelforge/playerdash/internal/playerdash/store"
	"github.com/pixelforge/playerdash/internal/playerdash/upstream"
	"github.com/pixelforge/playerdash/pkg/httpx"
	"github.com/pixelforge/playerdash/pkg/sessions"
	"github.com/pixelforge/playerdash/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	sessions *sessions.Manager
	store    store.Users

	AuthService   *service.AuthService
	ProfileClient *upstream.ProfileClient
	LikeClient    *upstream.LikeClient
}

func NewRouter(
	buildVersion string,
	sm *sessions.Manager,
	st store.Users,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		sessions:     sm,
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPages()
	r.registerAPI()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerPages() {
	h := &AuthHandler{
		Auth:     r.AuthService,
		Sessions: r.sessions,
	}

	r.Mux.Handle("GET /{$}", http.HandlerFunc(h.HandleIndex))
	r.Mux.Handle("GET /login", http.HandlerFunc(h.HandleLoginPage))
	r.Mux.Handle("POST /login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("GET /logout", http.HandlerFunc(h.HandleLogout))

	r.Mux.Handle("GET /dashboard",
		httpx.Chain(http.HandlerFunc(h.HandleDashboard),
			RequirePageSession(r.sessions),
		),
	)
}

func (r *Router) registerAPI() {
	h := &ProxyHandler{
		Profiles: r.ProfileClient,
		Likes:    r.LikeClient,
	}

	r.Mux.Handle("POST /api/view-profile",
		httpx.Chain(http.HandlerFunc(h.HandleViewProfile),
			RequireAPISession(r.sessions),
		),
	)
	r.Mux.Handle("POST /api/send-like",
		httpx.Chain(http.HandlerFunc(h.HandleSendLike),
			RequireAPISession(r.sessions),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
