package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/StaffPortal/config"
	"github.com/UmangSachdeva/StaffPortal/handlers"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/middleware"
)

type Dependencies struct {
	Handler       *handlers.Handler
	Authenticator middleware.Authenticator
	Config        *config.Config
	Logger        *slog.Logger
}

type limiters struct {
	login    *middleware.RateLimiter
	register *middleware.RateLimiter
}

// New builds the API: the /v1 route trees plus /csrf-token and /healthz,
// wrapped in the global middleware chain.
func New(deps Dependencies) http.Handler {
	cfg := deps.Config
	h := deps.Handler

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.HandleFunc("/csrf-token", h.CSRFToken).Methods(http.MethodGet)

	lim := limiters{
		login:    middleware.NewRateLimiter(cfg.LoginRateLimit, 10*time.Minute, "Too many login attempts, please try again later.", deps.Logger),
		register: middleware.NewRateLimiter(cfg.RegisterRateLimit, time.Hour, "Too many accounts created from this IP, please try again later.", deps.Logger),
	}

	v1 := r.PathPrefix("/v1").Subrouter()
	authenticated := middleware.Authentication(deps.Authenticator, deps.Logger)

	AuthRoutes(v1.PathPrefix("/auth").Subrouter(), h, authenticated, lim)
	TransactionRoutes(v1.PathPrefix("/transaction").Subrouter(), h, authenticated, deps.Logger)
	EmployeeRoutes(v1.PathPrefix("/employee").Subrouter(), h, authenticated, deps.Logger)
	AdminRoutes(v1.PathPrefix("/admin").Subrouter(), h, authenticated, deps.Logger)

	var handler http.Handler = r
	if cfg.CSRFEnabled {
		handler = middleware.CSRF(middleware.CSRFOptions{
			Key:            []byte(cfg.CSRFKey),
			Secure:         cfg.SecureCookies,
			TrustedOrigins: cfg.AllowedOrigins,
		}, deps.Logger)(handler)
	}

	general := middleware.NewRateLimiter(cfg.GeneralRateLimit, 15*time.Minute, "Too many requests, please try again later.", deps.Logger)
	handler = general.Middleware(handler)
	handler = middleware.BodyLimit(cfg.BodyLimit)(handler)
	handler = middleware.NoStore(handler)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.SecureHeaders()(handler)
	handler = middleware.Logging(deps.Logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(deps.Logger)(handler)

	return handler
}

func notFound(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusNotFound, helpers.MessageResponse{Message: "Route not found."})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusMethodNotAllowed, helpers.MessageResponse{Message: "Method not allowed."})
}
