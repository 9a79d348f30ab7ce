package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"

	"github.com/UmangSachdeva/StaffPortal/helpers"
)

const (
	CSRFHeader = "X-CSRF-Token"
	CSRFCookie = "XSRF-TOKEN"
)

type CSRFOptions struct {
	Key            []byte
	Secure         bool
	TrustedOrigins []string
}

// CSRF requires a matching cookie and X-CSRF-Token header on every unsafe
// method. GET, HEAD, OPTIONS and TRACE pass through and receive a token.
func CSRF(opts CSRFOptions, logger *slog.Logger) func(http.Handler) http.Handler {
	return csrf.Protect(opts.Key,
		csrf.RequestHeader(CSRFHeader),
		csrf.CookieName(CSRFCookie),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.Secure(opts.Secure),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.TrustedOrigins(originHosts(opts.TrustedOrigins)),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				"method", r.Method,
				"path", r.URL.Path,
				"reason", csrf.FailureReason(r),
				"request_id", GetRequestID(r.Context()),
			)
			helpers.WriteJSON(w, http.StatusForbidden, helpers.MessageResponse{Message: "Invalid CSRF token"})
		})),
	)
}

// CSRFToken is the token for the current request, empty when protection is off.
func CSRFToken(r *http.Request) string {
	return csrf.Token(r)
}

// originHosts keeps the host part of each origin, which is what the Referer check compares.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
