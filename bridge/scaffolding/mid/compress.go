package mid

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress gzips responses for clients that accept it. Small bodies are sent
// as is.
func Compress() func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return gzhttp.GzipHandler(h)
	}
}
