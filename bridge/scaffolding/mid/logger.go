package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/jrazmi/canaryapi/infrastructure/web"
	"github.com/jrazmi/canaryapi/sdk/logger"
)

// Logger writes a record when a request starts and when it completes.
func Logger(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			start := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = path + "?" + r.URL.RawQuery
			}

			log.InfoContext(ctx, "request started", "method", r.Method, "path", path,
				"remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			log.InfoContext(ctx, "request completed", "method", r.Method, "path", path,
				"remoteaddr", r.RemoteAddr, "statuscode", web.StatusOf(resp),
				"since", time.Since(start).String())

			return resp
		}
	}
}
