// Package web contains a small web framework extension over net/http.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Encoder defines behavior that can encode a data model and provide
// the content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc represents a function that handles a http request and returns something to encode
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// Middleware wraps a HandlerFunc
type Middleware func(HandlerFunc) HandlerFunc

// Telemetry starts trace context for an inbound request.
type Telemetry interface {
	SetTraceID(ctx context.Context, r *http.Request) context.Context
	GetTraceID(ctx context.Context) string
}

type WebHandler struct {
	mux       *http.ServeMux
	log       *slog.Logger
	telemetry Telemetry

	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	log              *slog.Logger
	telemetry        Telemetry
	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

// WithLogging sets the logger
func WithLogging(log *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(o *handlerOptions) {
		o.telemetry = tel
	}
}

// WithDefaultHeaders sets headers written on every response
func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(o *handlerOptions) {
		if o.defaultHeaders == nil {
			o.defaultHeaders = make(map[string]string)
		}
		for k, v := range headers {
			o.defaultHeaders[k] = v
		}
	}
}

// WithGlobalMiddleware adds middleware applied to every route, outermost first
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// NewWebHandler creates a WebHandler and applies options.
func NewWebHandler(opts ...HandlerOption) *WebHandler {
	internalOpts := &handlerOptions{
		defaultHeaders:   make(map[string]string),
		globalMiddleware: make([]Middleware, 0),
	}

	for _, opt := range opts {
		opt(internalOpts)
	}

	return &WebHandler{
		mux:              http.NewServeMux(),
		log:              internalOpts.log,
		telemetry:        internalOpts.telemetry,
		defaultHeaders:   internalOpts.defaultHeaders,
		globalMiddleware: internalOpts.globalMiddleware,
	}
}

// Handle registers handler for method and path. path uses net/http
// ServeMux pattern syntax, e.g. "/api/get/context/{id}".
func (wh *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := wh.buildHandlerChain(handler, middleware...)
	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if wh.telemetry != nil {
			ctx = wh.telemetry.SetTraceID(ctx, r)
		}
		ctx = setWriter(ctx, w)
		ctx = setRoute(ctx, pattern)

		for k, v := range wh.defaultHeaders {
			w.Header().Set(k, v)
		}

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && wh.log != nil {
			wh.log.ErrorContext(ctx, "respond error", "route", pattern, "error", err)
		}
	}

	wh.mux.HandleFunc(pattern, httpHandler)
}

// HandleRaw registers a plain http.Handler. Global middleware is not applied.
func (wh *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	wh.mux.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler. Requests no route matches get a JSON
// 404 body instead of the mux's plain text one.
func (wh *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := wh.mux.Handler(r); pattern == "" {
		w = &notFoundWriter{ResponseWriter: w}
	}
	wh.mux.ServeHTTP(w, r)
}

// notFoundWriter replaces a 404 written by the mux itself with a JSON body.
// Other statuses (405, redirects) pass through untouched.
type notFoundWriter struct {
	http.ResponseWriter
	swallow bool
}

func (nw *notFoundWriter) WriteHeader(code int) {
	if code != http.StatusNotFound {
		nw.ResponseWriter.WriteHeader(code)
		return
	}

	nw.swallow = true
	data, contentType, _ := NewNotFound().Encode()
	h := nw.ResponseWriter.Header()
	h.Del("X-Content-Type-Options")
	h.Set("Content-Type", contentType)
	nw.ResponseWriter.WriteHeader(code)
	nw.ResponseWriter.Write(data)
}

func (nw *notFoundWriter) Write(b []byte) (int, error) {
	if nw.swallow {
		return len(b), nil
	}
	return nw.ResponseWriter.Write(b)
}
