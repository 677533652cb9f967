package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tasktrack/tasktrack/internal/service"
	"github.com/tasktrack/tasktrack/internal/store"
	"github.com/tasktrack/tasktrack/pkg/httpx"
	"github.com/tasktrack/tasktrack/pkg/jwtx"
	"github.com/tasktrack/tasktrack/pkg/slogx"

	_ "github.com/tasktrack/tasktrack/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	loginURL     string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
	TodoService *service.TodoService
}

func NewRouter(
	verifier jwtx.Verifier,
	loginURL, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		loginURL:     loginURL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
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
	r.registerTodos()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskTrack API
//	@version		1.0.0
//	@description	A multi-user task tracking service with JWT-based authentication.
//	@description
//	@description				All tokens are signed with HS256. Every todo operation is scoped to the
//	@description				authenticated owner; records owned by other users return 404.
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn verifies the bearer token, preferring the Authorization header
// and falling back to the access_token cookie. Browser requests that
// fail with a cookie are redirected to the login page.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, httpx.AuthnOptions{LoginURL: r.loginURL})
}

func (r *Router) registerAuth() {
	// POST /register - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /token - strict rate limit by IP + username form field to slow
	// brute force on a single account
	tokenHandler := &TokenHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserInfoHandler{UserService: r.UserService}

	// Authenticated endpoint - lenient rate limit by user
	secured := httpx.Chain(h,
		r.authn(),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/userinfo", secured)
}

func (r *Router) registerTodos() {
	h := &TodosHandler{TodoService: r.TodoService}
	authn := r.authn()

	reads := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next, authn, httpx.RateLimitByUser(httpx.LenientLimit))
	}
	writes := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next, authn, httpx.RateLimitByUser(httpx.ModerateLimit))
	}

	r.Mux.Handle("GET /v1/todos", reads(h.HandleList))
	r.Mux.Handle("POST /v1/todos", writes(h.HandleCreate))
	r.Mux.Handle("GET /v1/todos/{id}", reads(h.HandleGet))
	r.Mux.Handle("PUT /v1/todos/{id}", writes(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/todos/{id}", writes(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
