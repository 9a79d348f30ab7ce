package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS allows the dashboard origins to call the API with cookies attached,
// which the anti-forgery cookie needs.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", CSRFHeader, RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
