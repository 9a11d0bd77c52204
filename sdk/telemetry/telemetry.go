// Package telemetry provides request trace context and Zipkin B3 propagation.
package telemetry

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jrazmi/canaryapi/sdk/cryptids"
)

type telKey int

const (
	traceKey telKey = iota + 1
)

// B3 propagation header names.
const (
	HeaderTraceID      = "X-B3-TraceId"
	HeaderSpanID       = "X-B3-SpanId"
	HeaderParentSpanID = "X-B3-ParentSpanId"
	HeaderSampled      = "X-B3-Sampled"
	HeaderFlags        = "X-B3-Flags"
)

const noTrace = "--------NOTRACE--------"

// TraceValues is the trace context carried for one request.
type TraceValues struct {
	TraceID      string
	SpanID       string
	ParentSpanID string
	Sampled      bool
}

type Telemetry struct {
	sampled bool
}

// NewTelemetry creates a telemetry instance. Every request is sampled, the
// same as a Zipkin sample rate of 100.
func NewTelemetry() Telemetry {
	return Telemetry{sampled: true}
}

// SetTraceID starts a span for an inbound request. A well-formed inbound
// X-B3-TraceId is continued and its X-B3-SpanId becomes the parent; otherwise
// a new trace is started.
func (t Telemetry) SetTraceID(ctx context.Context, r *http.Request) context.Context {
	tv := TraceValues{Sampled: t.sampled}

	if r != nil {
		if tid := strings.ToLower(r.Header.Get(HeaderTraceID)); isHex(tid, 16) || isHex(tid, 32) {
			tv.TraceID = tid
			if sid := strings.ToLower(r.Header.Get(HeaderSpanID)); isHex(sid, 16) {
				tv.ParentSpanID = sid
			}
			if s := r.Header.Get(HeaderSampled); s == "0" || s == "false" {
				tv.Sampled = false
			}
		}
	}

	if tv.TraceID == "" {
		tv.TraceID = newTraceID()
	}
	tv.SpanID = newSpanID()

	return context.WithValue(ctx, traceKey, &tv)
}

// GetTraceID returns the trace id stored in ctx.
func (t Telemetry) GetTraceID(ctx context.Context) string {
	tv, ok := GetValues(ctx)
	if !ok {
		return noTrace
	}
	return tv.TraceID
}

// GetValues returns the trace context stored in ctx.
func GetValues(ctx context.Context) (TraceValues, bool) {
	v, ok := ctx.Value(traceKey).(*TraceValues)
	if !ok {
		return TraceValues{}, false
	}
	return *v, true
}

// B3Headers returns propagation headers for a new child span of the span in
// ctx. Without a trace in ctx a fresh root span is described.
func B3Headers(ctx context.Context) http.Header {
	tv, ok := GetValues(ctx)
	if !ok {
		tv = TraceValues{TraceID: newTraceID(), Sampled: true}
	}

	h := make(http.Header)
	h.Set(HeaderTraceID, tv.TraceID)
	h.Set(HeaderSpanID, newSpanID())
	if tv.SpanID != "" {
		h.Set(HeaderParentSpanID, tv.SpanID)
	}
	h.Set(HeaderFlags, "0")
	if tv.Sampled {
		h.Set(HeaderSampled, "1")
	} else {
		h.Set(HeaderSampled, "0")
	}
	return h
}

func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newSpanID() string {
	id, err := cryptids.GenerateHexID(16)
	if err != nil {
		// crypto/rand failure; fall back to the low half of a uuid.
		return newTraceID()[16:]
	}
	return id
}

func isHex(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
