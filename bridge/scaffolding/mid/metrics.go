package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/jrazmi/canaryapi/bridge/scaffolding/metrics"
	"github.com/jrazmi/canaryapi/infrastructure/web"
)

// Metrics records request counts, latency and in-flight requests.
func Metrics(m *metrics.Metrics) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			done := m.Begin()
			defer done()

			start := time.Now()
			resp := next(ctx, r)

			m.Observe(r.Method, web.GetRoute(ctx), web.StatusOf(resp), time.Since(start))

			return resp
		}
	}
}
