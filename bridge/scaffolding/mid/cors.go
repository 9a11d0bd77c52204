package mid

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSConfig holds CORS configuration options
type CORSConfig struct {
	Origins     []string
	Methods     []string
	Headers     []string
	Credentials bool
	MaxAge      int
}

// DefaultCORSConfig returns a default CORS configuration
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		Origins:     []string{"*"},
		Methods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		Headers:     []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "X-B3-TraceId", "X-B3-SpanId", "X-B3-Sampled"},
		Credentials: false,
		MaxAge:      86400,
	}
}

// CORS wraps h so preflight requests are answered and CORS headers are set
// for the allowed origins.
func CORS(origins ...string) func(http.Handler) http.Handler {
	config := DefaultCORSConfig()
	if len(origins) > 0 {
		config.Origins = origins
	}
	return CORSWithConfig(config)
}

// CORSWithConfig wraps a handler with CORS handling built from config.
func CORSWithConfig(config CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.Origins,
		AllowedMethods:   config.Methods,
		AllowedHeaders:   config.Headers,
		AllowCredentials: config.Credentials,
		MaxAge:           config.MaxAge,
	})
	return c.Handler
}
