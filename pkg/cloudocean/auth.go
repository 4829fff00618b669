package cloudocean

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// AuthScheme is one header convention for presenting the API credential.
type AuthScheme struct {
	Name   string
	Header string
	Prefix string
}

// FallbackSchemes is the canonical attempt order. Deployments disagree on
// which header they honor, so every call walks this list until one stops
// answering 401. The X-API-Key header never takes a Bearer prefix.
var FallbackSchemes = []AuthScheme{
	{Name: "authorization", Header: "Authorization", Prefix: ""},
	{Name: "authorization-bearer", Header: "Authorization", Prefix: "Bearer "},
	{Name: "access-token", Header: "Access-Token", Prefix: ""},
	{Name: "access-token-bearer", Header: "Access-Token", Prefix: "Bearer "},
	{Name: "x-api-key", Header: "X-API-Key", Prefix: ""},
}

// AuthExhaustedError reports that every scheme in the fallback list was
// rejected with 401. The credential is likely invalid, expired, or scoped
// too narrowly; retrying without operator action will not help.
type AuthExhaustedError struct {
	Attempts int
}

func (e *AuthExhaustedError) Error() string {
	return fmt.Sprintf("credential rejected under all %d header schemes", e.Attempts)
}

// UpstreamError carries a non-401 error status returned by the API.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// TransportError wraps a network-level failure with no response available.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Fetcher issues authenticated GET requests against the metering API,
// falling back across header schemes. It holds no session state; each call
// builds its headers from the supplied credential, so concurrent calls are
// independent.
type Fetcher struct {
	client *http.Client
}

// NewFetcher wraps the given client; timeouts are the caller's to configure
// there or via the request context. A nil client means http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

const bearerPrefix = "Bearer "

// NormalizeCredential strips a single leading "Bearer " marker, case
// insensitively, so scheme prefixes never stack on an already prefixed
// credential.
func NormalizeCredential(credential string) string {
	trimmed := strings.TrimSpace(credential)
	if len(trimmed) >= len(bearerPrefix) && strings.EqualFold(trimmed[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(trimmed[len(bearerPrefix):])
	}
	return trimmed
}

// Get runs the fallback loop: schemes are tried one at a time, in order,
// never concurrently. A success response ends the loop and is returned with
// its body unread. 401 moves on to the next scheme. Any other error status
// is terminal and surfaces as *UpstreamError — falling through on, say, a
// 403 would disguise a scope problem as a bad credential. Network failures
// surface as *TransportError. If all schemes are rejected the caller gets
// *AuthExhaustedError.
func (f *Fetcher) Get(ctx context.Context, rawURL string, query url.Values, credential string) (*http.Response, error) {
	logger := zerolog.Ctx(ctx)
	token := NormalizeCredential(credential)

	target := rawURL
	if len(query) > 0 {
		target = rawURL + "?" + query.Encode()
	}

	for _, scheme := range FallbackSchemes {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set(scheme.Header, scheme.Prefix+token)

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, &TransportError{Err: err}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			logger.Debug().
				Str("scheme", scheme.Name).
				Str("url", rawURL).
				Msg("credential rejected, trying next header scheme")
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
		}

		return resp, nil
	}

	return nil, &AuthExhaustedError{Attempts: len(FallbackSchemes)}
}
