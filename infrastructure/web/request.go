package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes bounds how much of a request body ReadBody will accept.
const MaxBodyBytes = 1 << 20

// Param returns the web call parameters from the request.
func Param(r *http.Request, key string) string {
	return r.PathValue(key)
}

// ReadBody reads the whole request body, up to MaxBodyBytes. A missing body
// yields an empty slice, not an error.
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read request body: %w", err)
	}
	if len(data) > MaxBodyBytes {
		return nil, errors.New("request body too large")
	}
	return data, nil
}

// ExternalURL builds an absolute URL for path on the host the request was
// addressed to. The scheme is https when the request arrived over TLS or a
// proxy reports X-Forwarded-Proto: https.
func ExternalURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}
