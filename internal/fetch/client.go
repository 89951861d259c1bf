package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultUserAgent is sent with every page request.
const DefaultUserAgent = "RelentlessFetch/1.0 (+https://github.com/relentless-fetch)"

const defaultConnectTimeout = 10 * time.Second

// ClientConfig configures the HTTP transport used for page fetches.
type ClientConfig struct {
	// InsecureSkipVerify disables TLS certificate verification. Unsafe for untrusted
	// inputs; defaults to true in the CLI to match legacy behavior.
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
	// ProxyURL routes requests through a proxy when non-empty; otherwise the
	// standard proxy environment variables apply.
	ProxyURL string
}

// NewHTTPClient builds the client for page fetches. Keep-alives are off so every
// fetch opens and closes its own connection. There is no client-level timeout: the
// per-task deadline arrives through the request context.
func NewHTTPClient(cfg ClientConfig) (*http.Client, error) {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DialContext:       (&net.Dialer{Timeout: connectTimeout}).DialContext,
		DisableKeepAlives: true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in legacy behavior
		},
	}
	if cfg.ProxyURL != "" {
		u, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(u)
	}
	return &http.Client{Transport: transport}, nil
}

// HTTPFetcher performs one GET per call and returns the full body as text.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher wraps client; a nil client uses http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch retrieves rawURL. Any HTTP status is accepted; only transport failures
// (dial, DNS, reset, truncated body) are errors, reported as *TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return string(body), nil
}
