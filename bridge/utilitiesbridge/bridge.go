package utilitiesbridge

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/jrazmi/canaryapi/bridge/scaffolding/errs"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo"
	"github.com/jrazmi/canaryapi/infrastructure/web"
	"github.com/jrazmi/canaryapi/sdk/fibonacci"
	"github.com/jrazmi/canaryapi/sdk/logger"
)

type bridge struct {
	log         *logger.Logger
	counters    *countersrepo.Repository
	upstream    Pinger
	maxDuration time.Duration
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		log:         cfg.Log,
		counters:    cfg.Counters,
		upstream:    cfg.Upstream,
		maxDuration: cfg.MaxDuration,
	}
}

// httpFib stops computing once the request is abandoned or runs past
// maxDuration.
func (b *bridge) httpFib(ctx context.Context, r *http.Request) web.Encoder {
	n, perr := parseCount(r)
	if perr != nil {
		return perr
	}

	if b.maxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.maxDuration)
		defer cancel()
	}

	f, err := fibonacci.CalcContext(ctx, n)
	if err != nil {
		b.log.WarnContext(ctx, "fibonacci abandoned", "n", n, "error", err)
		return errs.New(errs.Internal, fmt.Errorf("fib %d: %w", n, err))
	}
	return web.NewTextResponse(f.String())
}

// httpSleep holds the request for n seconds. A client that goes away ends the
// wait early. Delays the server could not deliver a response for, n seconds
// at or past maxDuration, are refused up front.
func (b *bridge) httpSleep(ctx context.Context, r *http.Request) web.Encoder {
	n, perr := parseCount(r)
	if perr != nil {
		return perr
	}

	d := time.Duration(math.MaxInt64)
	if n < uint64(math.MaxInt64/int64(time.Second)) {
		d = time.Duration(n) * time.Second
	}
	if b.maxDuration > 0 && d >= b.maxDuration {
		b.log.WarnContext(ctx, "sleep refused", "seconds", n, "max", b.maxDuration.String())
		return errs.Newf(errs.InvalidArgument, "sleep %d: must be shorter than %s", n, b.maxDuration)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return web.NewTextResponse(fmt.Sprintf("delayed by %d seconds", n))
	case <-ctx.Done():
		return errs.New(errs.Internal, fmt.Errorf("sleep %d: %w", n, ctx.Err()))
	}
}

func (b *bridge) httpCount(ctx context.Context, r *http.Request) web.Encoder {
	hits, err := b.counters.Increment(ctx, countersrepo.Hits)
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return web.NewTextResponse(strconv.FormatInt(hits, 10))
}

// httpRedisPing relays the upstream reply, whatever its status.
func (b *bridge) httpRedisPing(ctx context.Context, r *http.Request) web.Encoder {
	resp, err := b.upstream.Ping(ctx)
	if err != nil {
		b.log.WarnContext(ctx, "upstream unreachable", "error", err)
		return errs.New(errs.Internal, err)
	}
	return web.RawResponse{
		Body:        resp.Body,
		ContentType: resp.ContentType,
		Status:      resp.Status,
	}
}

// parseCount reads the {n} path segment. Only plain decimal digits match, as
// with the task ids.
func parseCount(r *http.Request) (uint64, *errs.Error) {
	raw := web.Param(r, "n")
	if raw == "" {
		return 0, errs.Newf(errs.NotFound, "missing count")
	}
	for i := range len(raw) {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, errs.Newf(errs.NotFound, "%q is not a non-negative integer", raw)
		}
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.Newf(errs.NotFound, "%q out of range", raw)
	}
	return n, nil
}
