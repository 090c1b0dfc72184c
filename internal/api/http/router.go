package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
	"github.com/NimrodLoozar/OwnProject/pkg/jwtx"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	uploadDir    string

	store            store.Store
	AuthService      *service.AuthService
	UserService      *service.UserService
	LifecycleService *service.LifecycleService
	DataService      *service.DataService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, uploadDir string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		uploadDir:    uploadDir,
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
	r.registerAuth()
	r.registerUsers()
	r.registerData()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// guarded wraps h with the full access chain: token verification, principal
// resolution with the active-account gate, then any extra gates, then the
// per-user rate limit for the endpoint class.
func (r *Router) guarded(h http.Handler, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		RequireUser(r.store),
	}
	mws = append(mws, extra...)
	mws = append(mws, httpx.RateLimitBySubject(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// Public credential endpoints get the strict per-IP limit.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/me", r.guarded(&MeHandler{}, httpx.LenientLimit))
}

func (r *Router) registerUsers() {
	r.Mux.Handle("GET /api/users",
		r.guarded(&ListUsersHandler{UserService: r.UserService}, httpx.LenientLimit, RequireAdmin()))

	// Self-or-admin check happens inside the handler once the target id is
	// known.
	r.Mux.Handle("GET /api/users/{id}",
		r.guarded(&GetUserHandler{UserService: r.UserService}, httpx.LenientLimit))

	r.Mux.Handle("PUT /api/users/me/profile",
		r.guarded(&UpdateProfileHandler{UserService: r.UserService}, httpx.ModerateLimit))

	uploadHandler := &UploadProfilePictureHandler{
		UserService: r.UserService,
		UploadDir:   r.uploadDir,
	}
	deleteHandler := &DeleteProfilePictureHandler{
		UserService: r.UserService,
		UploadDir:   r.uploadDir,
	}
	r.Mux.Handle("POST /api/users/me/profile-picture",
		r.guarded(uploadHandler, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/users/me/profile-picture",
		r.guarded(deleteHandler, httpx.ModerateLimit))

	r.Mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.uploadDir))))
}

func (r *Router) registerData() {
	r.Mux.Handle("GET /api/data",
		r.guarded(&ListDataHandler{DataService: r.DataService}, httpx.LenientLimit))
	r.Mux.Handle("POST /api/data",
		r.guarded(&CreateDataHandler{DataService: r.DataService}, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/data/{key}",
		r.guarded(&GetDataHandler{DataService: r.DataService}, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/data/{key}",
		r.guarded(&UpdateDataHandler{DataService: r.DataService}, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/data/{key}",
		r.guarded(&DeleteDataHandler{DataService: r.DataService}, httpx.ModerateLimit))
}

func (r *Router) registerAdmin() {
	r.Mux.Handle("GET /api/admin/users",
		r.guarded(&AdminListUsersHandler{UserService: r.UserService}, httpx.ModerateLimit, RequireOwner()))
	r.Mux.Handle("DELETE /api/admin/users/{id}",
		r.guarded(&AdminDeleteUserHandler{LifecycleService: r.LifecycleService}, httpx.ModerateLimit, RequireOwner()))
	r.Mux.Handle("POST /api/admin/users/{id}/restore",
		r.guarded(&AdminRestoreUserHandler{LifecycleService: r.LifecycleService}, httpx.ModerateLimit, RequireOwner()))
	r.Mux.Handle("GET /api/admin/users/deleted/list",
		r.guarded(&AdminListDeletedHandler{LifecycleService: r.LifecycleService}, httpx.ModerateLimit, RequireOwner()))

	// Existence probe stays public for external integrations.
	r.Mux.Handle("GET /api/admin/users/{id}/exists",
		httpx.Chain(&UserExistsHandler{LifecycleService: r.LifecycleService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
