package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jrazmi/canaryapi/app/canary/api"
	"github.com/jrazmi/canaryapi/app/canary/config"
	"github.com/jrazmi/canaryapi/bridge/scaffolding/metrics"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo/stores/countersredisstore"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/canaryapi/infrastructure/upstream"
	"github.com/jrazmi/canaryapi/sdk/logger"
	"github.com/jrazmi/canaryapi/sdk/telemetry"
)

func TestPrefixes(t *testing.T) {
	tests := []struct {
		base  string
		count int
		want  []string
	}{
		{"api", 3, []string{"/api", "/api2", "/api3"}},
		{"api", 1, []string{"/api"}},
		{"api", 0, []string{"/api"}},
		{"v", 2, []string{"/v", "/v2"}},
	}
	for _, tt := range tests {
		if got := api.Prefixes(tt.base, tt.count); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Prefixes(%q, %d) = %v, want %v", tt.base, tt.count, got, tt.want)
		}
	}

	if got := api.Prefixes("api", 45); len(got) != 45 || got[44] != "/api45" {
		t.Errorf("45 groups: last = %q, len %d", got[len(got)-1], len(got))
	}
}

type env struct {
	handler  http.Handler
	redis    *miniredis.Miniredis
	upstream *http.Header
}

func newEnv(t *testing.T) env {
	t.Helper()
	log := logger.NewDefault(logger.WithOutput(io.Discard))

	rs := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: rs.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	var seen http.Header
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ping":[true,"PONG"]}`)
	}))
	t.Cleanup(gw.Close)

	h, err := api.WebHandler(config.Canary{
		Build:  "test",
		Logger: log,
		Routes: config.Routes{Base: "api", Count: 45, Seed: true, CORSOrigins: []string{"*"}},
		Repositories: config.Repositories{
			Tasks:    tasksrepo.NewRepository(log, tasksmemstore.NewStore(tasksrepo.SeedTasks()...)),
			Counters: countersrepo.NewRepository(log, countersredisstore.NewStore(client)),
		},
		Redis:     client,
		Upstream:  upstream.New(upstream.Config{URL: gw.URL, Timeout: time.Second}),
		Telemetry: telemetry.NewTelemetry(),
		Metrics:   metrics.New("canary"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return env{handler: h, redis: rs, upstream: &seen}
}

func (e env) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestGroupsShareOneStore(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api7/post/context", `{"title":"Rocky 9","description":"RHEL 9 based"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodGet, "/api45/get/context/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get from another group: %d", rec.Code)
	}
	want := `{"task":{"uri":"http://example.com/api45/get/context/5","title":"Rocky 9","description":"RHEL 9 based","done":false}}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}

	if rec := e.do(t, http.MethodDelete, "/api/delete/context/5", ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api7/get/context/5", ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: %d", rec.Code)
	}
}

func TestCountSharedAcrossGroups(t *testing.T) {
	e := newEnv(t)

	e.do(t, http.MethodGet, "/api/count", "")
	rec := e.do(t, http.MethodGet, "/api30/count", "")
	if rec.Body.String() != "2" {
		t.Errorf("count = %q, want 2", rec.Body.String())
	}
	e.redis.CheckGet(t, "hits", "2")
}

func TestRedisPingPropagatesTrace(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/api3/redisping", "",
		telemetry.HeaderTraceID, "463ac35c9f6413ad48485a3953bb6124",
		telemetry.HeaderSpanID, "a2fb4a1d1a96d312",
	)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ping":[true,"PONG"]}` {
		t.Fatalf("redisping: %d %q", rec.Code, rec.Body.String())
	}

	seen := *e.upstream
	if seen.Get(telemetry.HeaderTraceID) != "463ac35c9f6413ad48485a3953bb6124" {
		t.Errorf("upstream trace id = %q", seen.Get(telemetry.HeaderTraceID))
	}
	if seen.Get(telemetry.HeaderParentSpanID) == "" || seen.Get(telemetry.HeaderParentSpanID) == "a2fb4a1d1a96d312" {
		t.Errorf("upstream parent span = %q, want this service's span", seen.Get(telemetry.HeaderParentSpanID))
	}
}

func TestServiceEndpoints(t *testing.T) {
	e := newEnv(t)

	if rec := e.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz: %d %q", rec.Code, rec.Body.String())
	}

	if rec := e.do(t, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("readyz: %d %q", rec.Code, rec.Body.String())
	}

	e.do(t, http.MethodGet, "/api/fib/10", "")
	rec := e.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `canary_http_requests_total{method="GET",route="GET /api/fib/{n}",status="200"} 1`) {
		t.Errorf("request not counted:\n%s", rec.Body.String())
	}

	rec = e.do(t, http.MethodGet, "/api12/", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("landing: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "/api12/get/context") {
		t.Error("landing page should list the group's routes")
	}

	if rec := e.do(t, http.MethodGet, "/static/style.css", ""); rec.Code != http.StatusOK {
		t.Errorf("static: %d", rec.Code)
	}
}

func TestReadyzRedisDown(t *testing.T) {
	e := newEnv(t)
	e.redis.Close()

	if rec := e.do(t, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz with redis down: %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz should not depend on redis: %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	e := newEnv(t)

	for _, path := range []string{"/nope", "/api46/get/context", "/api/get/context/abc"} {
		rec := e.do(t, http.MethodGet, path, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", path, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] != "Not found" {
			t.Errorf("%s: body = %q", path, rec.Body.String())
		}
	}
}

func TestOuterWrappers(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/api/get/context", "", "Origin", "http://client.test")
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("cors header = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	// Large enough to pass gzhttp's minimum size.
	for i := range 30 {
		e.do(t, http.MethodPost, "/api/post/context", `{"title":"padding task `+strings.Repeat("x", i)+`"}`)
	}
	rec = e.do(t, http.MethodGet, "/api/get/context", "", "Accept-Encoding", "gzip")
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("content encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
}
