package utilitiesbridge_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jrazmi/canaryapi/bridge/scaffolding/mid"
	"github.com/jrazmi/canaryapi/bridge/utilitiesbridge"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo"
	"github.com/jrazmi/canaryapi/core/repositories/countersrepo/stores/countersredisstore"
	"github.com/jrazmi/canaryapi/infrastructure/upstream"
	"github.com/jrazmi/canaryapi/infrastructure/web"
	"github.com/jrazmi/canaryapi/sdk/logger"
)

type fakePinger struct {
	resp upstream.Response
	err  error
}

func (f fakePinger) Ping(ctx context.Context) (upstream.Response, error) {
	return f.resp, f.err
}

func newHandler(t *testing.T, pinger utilitiesbridge.Pinger, maxDuration ...time.Duration) (*web.WebHandler, *miniredis.Miniredis) {
	t.Helper()
	log := logger.NewDefault(logger.WithOutput(io.Discard))

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	wh := web.NewWebHandler(web.WithGlobalMiddleware(mid.Errors(log)))
	cfg := utilitiesbridge.Config{
		Log:      log,
		Counters: countersrepo.NewRepository(log, countersredisstore.NewStore(client)),
		Upstream: pinger,
	}
	if len(maxDuration) > 0 {
		cfg.MaxDuration = maxDuration[0]
	}
	for _, prefix := range []string{"/api", "/api2"} {
		utilitiesbridge.AddHttpRoutes(wh.Group(prefix), cfg)
	}
	return wh, srv
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestFib(t *testing.T) {
	h, _ := newHandler(t, fakePinger{})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/api/fib/0", http.StatusOK, "0"},
		{"/api/fib/1", http.StatusOK, "1"},
		{"/api2/fib/10", http.StatusOK, "55"},
		{"/api/fib/100", http.StatusOK, "354224848179261915075"},
		{"/api/fib/-3", http.StatusNotFound, ""},
		{"/api/fib/ten", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := get(h, tt.path)
		if rec.Code != tt.code {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.code)
			continue
		}
		if tt.body != "" && rec.Body.String() != tt.body {
			t.Errorf("%s: body = %q, want %q", tt.path, rec.Body.String(), tt.body)
		}
	}
}

func TestSleep(t *testing.T) {
	h, _ := newHandler(t, fakePinger{})

	rec := get(h, "/api/sleep/0")
	if rec.Code != http.StatusOK || rec.Body.String() != "delayed by 0 seconds" {
		t.Fatalf("sleep 0: %d %q", rec.Code, rec.Body.String())
	}

	start := time.Now()
	rec = get(h, "/api2/sleep/1")
	if rec.Body.String() != "delayed by 1 seconds" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("returned after %s, want at least 1s", elapsed)
	}

	if rec := get(h, "/api/sleep/x"); rec.Code != http.StatusNotFound {
		t.Errorf("sleep x: status = %d", rec.Code)
	}
}

func TestSleep_ClientGone(t *testing.T) {
	h, _ := newHandler(t, fakePinger{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/sleep/30", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(httptest.NewRecorder(), req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sleep did not stop when the request context ended")
	}
}

func TestCount(t *testing.T) {
	h, srv := newHandler(t, fakePinger{})

	for i, path := range []string{"/api/count", "/api2/count", "/api/count"} {
		rec := get(h, path)
		want := []string{"1", "2", "3"}[i]
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Errorf("%s: %d %q, want %q", path, rec.Code, rec.Body.String(), want)
		}
	}
	srv.CheckGet(t, countersrepo.Hits, "3")

	srv.Close()
	if rec := get(h, "/api/count"); rec.Code != http.StatusInternalServerError {
		t.Errorf("redis down: status = %d, want 500", rec.Code)
	}
}

func TestRedisPing_Relays(t *testing.T) {
	h, _ := newHandler(t, fakePinger{resp: upstream.Response{
		Status:      http.StatusAccepted,
		ContentType: "application/json",
		Body:        []byte(`{"ping":[true,"PONG"]}`),
	}})

	rec := get(h, "/api/redisping")
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != `{"ping":[true,"PONG"]}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRedisPing_Unreachable(t *testing.T) {
	h, _ := newHandler(t, fakePinger{err: errors.New("dial tcp: connection refused")})

	rec := get(h, "/api/redisping")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSleep_RefusedPastMaxDuration(t *testing.T) {
	h, _ := newHandler(t, fakePinger{}, 2*time.Second)

	for _, path := range []string{"/api/sleep/2", "/api/sleep/3", "/api2/sleep/99999999999", "/api/sleep/18446744073709551615"} {
		start := time.Now()
		rec := get(h, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("%s: refused only after %s", path, elapsed)
		}
	}

	if rec := get(h, "/api/sleep/1"); rec.Code != http.StatusOK || rec.Body.String() != "delayed by 1 seconds" {
		t.Errorf("sleep under the bound: %d %q", rec.Code, rec.Body.String())
	}
}

// The server's write timeout does not cancel the handler, so the refusal is
// what gets a body back to the client.
func TestSleep_BehindWriteTimeout(t *testing.T) {
	const writeTimeout = 1500 * time.Millisecond
	h, _ := newHandler(t, fakePinger{}, writeTimeout)

	srv := httptest.NewUnstartedServer(h)
	srv.Config.WriteTimeout = writeTimeout
	srv.Start()
	defer srv.Close()

	start := time.Now()
	resp, err := http.Get(srv.URL + "/api/sleep/3")
	if err != nil {
		t.Fatalf("client got no response: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if string(body) != `{"error":"Bad request"}` {
		t.Errorf("body = %q", body)
	}
	if elapsed := time.Since(start); elapsed >= writeTimeout {
		t.Errorf("answered after %s, past the write timeout", elapsed)
	}
}

func TestFib_StopsAtMaxDuration(t *testing.T) {
	h, _ := newHandler(t, fakePinger{}, 50*time.Millisecond)

	start := time.Now()
	rec := get(h, "/api/fib/18446744073709551615")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("fib ran %s past its bound", elapsed)
	}

	if rec := get(h, "/api/fib/10"); rec.Body.String() != "55" {
		t.Errorf("fib 10 = %q", rec.Body.String())
	}
}

func TestBridge_LogsRefusals(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf))

	wh := web.NewWebHandler(web.WithGlobalMiddleware(mid.Errors(log)))
	utilitiesbridge.AddHttpRoutes(wh.Group("/api"), utilitiesbridge.Config{
		Log:         log,
		Upstream:    fakePinger{err: errors.New("connection refused")},
		MaxDuration: time.Second,
	})

	get(wh, "/api/sleep/5")
	get(wh, "/api/redisping")

	for _, want := range []string{"sleep refused", "upstream unreachable"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log is missing %q:\n%s", want, buf.String())
		}
	}
}
