// Package upstream is the HTTP client for the key-value gateway the service
// proxies ping requests to.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jrazmi/canaryapi/sdk/environment"
	"github.com/jrazmi/canaryapi/sdk/telemetry"
)

// maxBody caps how much of an upstream reply is relayed.
const maxBody = 1 << 20

// Config represents the upstream environment
type Config struct {
	URL     string        `env:"UPSTREAM_URL" default:"http://webdis-svc.webdis:7379"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" default:"10s"`
}

// Response is an upstream reply, relayed as received.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

type Client struct {
	base string
	http *http.Client
}

// NewClientFromEnv creates a new upstream client using environment variables
func NewClientFromEnv(prefix string) (*Client, error) {
	var cfg Config
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing upstream config: %w", err)
	}
	return New(cfg), nil
}

func New(cfg Config) *Client {
	return &Client{
		base: strings.TrimRight(cfg.URL, "/"),
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Ping sends GET <base>/ping carrying B3 headers for a child of the span in
// ctx. Any HTTP status is a successful relay; only transport failures return
// an error.
func (c *Client) Ping(ctx context.Context) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/ping", nil)
	if err != nil {
		return Response{}, fmt.Errorf("upstream ping: build request: %w", err)
	}
	for k, v := range telemetry.B3Headers(ctx) {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("upstream ping: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Response{}, fmt.Errorf("upstream ping: read body: %w", err)
	}

	return Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
